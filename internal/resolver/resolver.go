// Package resolver assembles one StoreRecord per storefront domain. Pages are
// visited in a fixed order and every fetch or parse failure degrades to an
// empty field instead of an error.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PageFetcher returns the text of a page, or false if it could not be loaded.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, bool)
}

var ErrInvalidDomain = errors.New("invalid domain")

// ValidateDomain accepts bare host names such as "shop.example.com".
func ValidateDomain(domain string) error {
	switch {
	case domain == "":
		return fmt.Errorf("%w: empty", ErrInvalidDomain)
	case strings.Contains(domain, "://"), strings.ContainsAny(domain, "/?# \t\r\n"):
		return fmt.Errorf("%w: %q is not a bare host name", ErrInvalidDomain, domain)
	}
	return nil
}

func pageURL(domain, path string) string {
	return "https://" + domain + path
}
