package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"storefront-crawler/internal/config"
	"storefront-crawler/internal/crawler"
	"storefront-crawler/internal/ioformats"
	"storefront-crawler/internal/resolver"
	"storefront-crawler/internal/runner"
	"storefront-crawler/pkg/logger"
)

const usage = "usage: %s -i <input> -o <output>\n\nScrape contact details and products of storefront domains.\n"

func main() {
	os.Exit(run())
}

func run() int {
	var in, out string
	flag.StringVar(&in, "i", "", "input CSV with a 'url' column")
	flag.StringVar(&in, "input", "", "input CSV with a 'url' column")
	flag.StringVar(&out, "o", "", "output CSV file")
	flag.StringVar(&out, "output", "", "output CSV file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if in == "" || out == "" {
		flag.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	l, err := logger.Open(cfg.ErrorLog, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := crawl(ctx, cfg, l, os.Stdout, in, out); err != nil {
		l.Errorf("%v", err)
		return 1
	}
	return 0
}

// crawl reads the domain list at in, resolves every store and writes the
// table to out. Progress lines go to progress.
func crawl(ctx context.Context, cfg *config.Config, l *logger.Logger, progress io.Writer, in, out string) error {
	domains, err := ioformats.ReadDomains(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintf(progress, "Found %d store domains\n", len(domains))

	client := crawler.NewHTTPClient(cfg.Timeout, cfg.DialTimeout, cfg.MaxBodyBytes).WithUserAgent(cfg.UserAgent)
	stores := newStoreResolver(cfg, crawler.NewLoader(client, l), l)
	records := runner.New(stores, l, progress, cfg.Workers).Run(ctx, domains)

	if err := ioformats.WriteStoresFile(out, records, stores.Slots()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	l.Infof("wrote %d of %d stores to %s", len(records), len(domains), out)
	return nil
}

// newStoreResolver gives every store its own cookie session.
func newStoreResolver(cfg *config.Config, loader *crawler.Loader, l *logger.Logger) *resolver.StoreResolver {
	sessions := func() (resolver.PageFetcher, error) { return loader.Session() }
	return resolver.NewSessionStoreResolver(sessions, l, cfg.ProductLimit).WithAnchorFallback(cfg.AnchorFallback)
}
