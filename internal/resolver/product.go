package resolver

import (
	"context"
	"errors"
	"net/url"

	"storefront-crawler/internal/extract"
	"storefront-crawler/internal/models"
	"storefront-crawler/internal/parser"
	"storefront-crawler/pkg/logger"
)

const listingPath = "/collections/all"

var errListingUnavailable = errors.New("catalog listing unavailable")

type ProductResolver struct {
	pages  PageFetcher
	parser *parser.Parser
	rec    logger.Recorder
	// anchorFallback scans listing anchors when no /collections/all/products/
	// link is present. Off by default.
	anchorFallback bool
}

func NewProductResolver(pages PageFetcher, p *parser.Parser, rec logger.Recorder) *ProductResolver {
	return &ProductResolver{pages: pages, parser: p, rec: rec}
}

// WithAnchorFallback toggles handle discovery from listing anchors of any
// collection when the /collections/all/products/ pattern finds nothing.
func (r *ProductResolver) WithAnchorFallback(on bool) *ProductResolver {
	r.anchorFallback = on
	return r
}

// Resolve returns exactly limit records for domain. Slots without a
// discovered handle, or whose product could not be loaded, are empty.
func (r *ProductResolver) Resolve(ctx context.Context, domain string, limit int) []models.ProductRecord {
	if limit <= 0 {
		return []models.ProductRecord{}
	}
	out := make([]models.ProductRecord, limit)
	for i, handle := range r.Handles(ctx, domain, limit) {
		if ctx.Err() != nil {
			break
		}
		out[i] = r.product(ctx, domain, handle)
	}
	return out
}

// Handles discovers up to limit product handles from the catalog listing.
func (r *ProductResolver) Handles(ctx context.Context, domain string, limit int) []string {
	listURL := pageURL(domain, listingPath)
	text, ok := r.pages.FetchPage(ctx, listURL)
	if !ok {
		r.rec.Recoverable("no products discovered", logger.Fields{"domain": domain, "url": listURL}, errListingUnavailable)
		return nil
	}
	if handles := extract.ProductHandles(text, limit); len(handles) > 0 || !r.anchorFallback {
		return handles
	}
	handles, err := r.parser.ProductLinks(text, limit)
	if err != nil {
		r.rec.Recoverable("listing parse failed", logger.Fields{"domain": domain, "url": listURL}, err)
		return nil
	}
	return handles
}

func (r *ProductResolver) product(ctx context.Context, domain, handle string) models.ProductRecord {
	productURL := pageURL(domain, "/products/"+url.PathEscape(handle)+".json")
	text, ok := r.pages.FetchPage(ctx, productURL)
	if !ok {
		return models.ProductRecord{}
	}
	rec, err := r.parser.ParseProduct([]byte(text))
	if err != nil {
		r.rec.Recoverable("product parse failed", logger.Fields{"domain": domain, "handle": handle}, err)
		return models.ProductRecord{}
	}
	return rec
}
