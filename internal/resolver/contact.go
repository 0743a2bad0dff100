package resolver

import (
	"context"

	"storefront-crawler/internal/extract"
	"storefront-crawler/internal/models"
)

// ContactPaths are tried in this order until every contact field is known.
var ContactPaths = []string{
	"/",
	"/pages/about",
	"/pages/about-us",
	"/pages/contact",
	"/pages/contact-us",
}

type ContactResolver struct {
	pages PageFetcher
}

func NewContactResolver(pages PageFetcher) *ContactResolver {
	return &ContactResolver{pages: pages}
}

// Resolve scans the contact paths of domain. The first page that yields a
// field wins it; fields never found stay empty.
func (r *ContactResolver) Resolve(ctx context.Context, domain string) models.ContactInfo {
	var info models.ContactInfo
	for _, path := range ContactPaths {
		if ctx.Err() != nil {
			break
		}
		text, ok := r.pages.FetchPage(ctx, pageURL(domain, path))
		if !ok {
			continue
		}
		fill(&info.Email, extract.Email, text)
		fill(&info.Twitter, extract.TwitterLink, text)
		fill(&info.Facebook, extract.FacebookLink, text)
		if info.Complete() {
			break
		}
	}
	return info
}

func fill(field *string, find func(string) (string, bool), text string) {
	if *field != "" {
		return
	}
	if v, ok := find(text); ok {
		*field = v
	}
}
