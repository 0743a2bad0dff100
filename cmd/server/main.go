package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-crawler/internal/config"
	"storefront-crawler/internal/crawler"
	"storefront-crawler/internal/resolver"
	"storefront-crawler/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Errorf("config: %v", err)
		os.Exit(1)
	}
	l, err := logger.Open(cfg.ErrorLog, cfg.LogLevel)
	if err != nil {
		logger.New().Errorf("%v", err)
		os.Exit(1)
	}
	defer l.Close()

	client := crawler.NewHTTPClient(cfg.Timeout, cfg.DialTimeout, cfg.MaxBodyBytes).WithUserAgent(cfg.UserAgent)
	stores := newStoreResolver(cfg, crawler.NewLoader(client, l), l)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      logRequest(l, newMux(stores, l, cfg.Workers)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// newStoreResolver gives every store its own cookie session.
func newStoreResolver(cfg *config.Config, loader *crawler.Loader, l *logger.Logger) *resolver.StoreResolver {
	sessions := func() (resolver.PageFetcher, error) { return loader.Session() }
	return resolver.NewSessionStoreResolver(sessions, l, cfg.ProductLimit).WithAnchorFallback(cfg.AnchorFallback)
}
