package runner

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"storefront-crawler/internal/models"
	"storefront-crawler/pkg/logger"
)

type StoreResolver interface {
	Resolve(ctx context.Context, domain string) (models.StoreRecord, error)
}

type Runner struct {
	resolver StoreResolver
	log      *logger.Logger
	progress io.Writer
	workers  int

	mu sync.Mutex
}

// New returns a runner resolving up to workers domains at once. Progress lines
// ("Loading 'x' ... OK") are written to progress.
func New(r StoreResolver, l *logger.Logger, progress io.Writer, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{resolver: r, log: l, progress: progress, workers: workers}
}

// Run resolves every domain and returns the records that succeeded, in input
// order. A failed domain is logged and left out.
func (r *Runner) Run(ctx context.Context, domains []string) []models.StoreRecord {
	results := make([]*models.StoreRecord, len(domains))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, d := range domains {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r.attempt(d)
			store, err := r.resolver.Resolve(ctx, d)
			if err != nil {
				r.log.Errorf("load %s: %v", d, err)
				r.report(d, "KO")
				return nil
			}
			results[i] = &store
			r.report(d, "OK")
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.StoreRecord, 0, len(domains))
	for _, s := range results {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// sequential runs print "Loading 'x' ... " before resolving and the marker
// after; concurrent runs print whole lines so they do not interleave.
func (r *Runner) attempt(domain string) {
	if r.workers > 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.progress, "Loading '%s' ... ", domain)
}

func (r *Runner) report(domain, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.workers > 1 {
		fmt.Fprintf(r.progress, "Loading '%s' ... %s\n", domain, status)
		return
	}
	fmt.Fprintln(r.progress, status)
}
