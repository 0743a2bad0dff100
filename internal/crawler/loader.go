package crawler

import (
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"storefront-crawler/pkg/logger"
)

// Loader turns every fetch outcome into page text or nothing. Callers treat an
// unreachable page the same as a page without useful content.
type Loader struct {
	client *HTTPClient
	rec    logger.Recorder
}

func NewLoader(client *HTTPClient, rec logger.Recorder) *Loader {
	return &Loader{client: client, rec: rec}
}

// FetchPage returns the UTF-8 text of the page at url, or false when the
// request failed or answered with a non-2xx status. Bodies over the size cap
// are cut at the cap and the cut is recorded.
func (l *Loader) FetchPage(ctx context.Context, url string) (string, bool) {
	body, _, contentType, _, err := l.client.Fetch(ctx, url)
	if err != nil {
		l.rec.Recoverable("fetch failed", logger.Fields{"url": url}, err)
		return "", false
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		// keep what fits; markup past the cap is lost
		l.rec.Recoverable("body truncated", logger.Fields{"url": url, "bytes": len(data)}, err)
	case err != nil:
		l.rec.Recoverable("read failed", logger.Fields{"url": url}, err)
		return "", false
	}
	return decode(data, contentType), true
}

// Session returns a loader whose cookies live only as long as the returned
// value, so one store never sees another store's cookies.
func (l *Loader) Session() (*Loader, error) {
	client, err := l.client.WithCookieJar()
	if err != nil {
		return nil, err
	}
	return NewLoader(client, l.rec), nil
}

func decode(data []byte, contentType string) string {
	enc, name, _ := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" {
		return string(data)
	}
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(utf8data)
}
