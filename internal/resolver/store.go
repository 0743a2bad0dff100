package resolver

import (
	"context"
	"fmt"

	"storefront-crawler/internal/models"
	"storefront-crawler/internal/parser"
	"storefront-crawler/pkg/logger"
)

// PageSessions returns a page source scoped to one store resolution.
type PageSessions func() (PageFetcher, error)

type StoreResolver struct {
	sessions       PageSessions
	parser         *parser.Parser
	rec            logger.Recorder
	limit          int
	anchorFallback bool
}

// NewStoreResolver resolves every store through pages. limit is the number of
// product slots per record.
func NewStoreResolver(pages PageFetcher, rec logger.Recorder, limit int) *StoreResolver {
	return NewSessionStoreResolver(func() (PageFetcher, error) { return pages, nil }, rec, limit)
}

// NewSessionStoreResolver opens a fresh page source for each store, so no
// client state carries over from one store to the next.
func NewSessionStoreResolver(sessions PageSessions, rec logger.Recorder, limit int) *StoreResolver {
	return &StoreResolver{sessions: sessions, parser: parser.New(), rec: rec, limit: limit}
}

// WithAnchorFallback enables product discovery from listing anchors, see
// ProductResolver.WithAnchorFallback.
func (r *StoreResolver) WithAnchorFallback(on bool) *StoreResolver {
	r.anchorFallback = on
	return r
}

func (r *StoreResolver) Slots() int { return r.limit }

// Resolve builds the record for domain. It fails only for a malformed domain,
// a page source that cannot be opened, or a cancelled context; unreachable
// pages just leave fields empty.
func (r *StoreResolver) Resolve(ctx context.Context, domain string) (models.StoreRecord, error) {
	if err := ValidateDomain(domain); err != nil {
		return models.StoreRecord{}, err
	}
	pages, err := r.sessions()
	if err != nil {
		return models.StoreRecord{}, fmt.Errorf("open session for %s: %w", domain, err)
	}

	store := models.StoreRecord{URL: domain}
	store.Contact = NewContactResolver(pages).Resolve(ctx, domain)
	store.Products = NewProductResolver(pages, r.parser, r.rec).
		WithAnchorFallback(r.anchorFallback).
		Resolve(ctx, domain, r.limit)
	if err := ctx.Err(); err != nil {
		return models.StoreRecord{}, err
	}
	return store, nil
}
