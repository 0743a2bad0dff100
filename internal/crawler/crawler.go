package crawler

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const defaultUserAgent = "storefront-crawler/1.0 (+https://example.com)"

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

type HTTPClient struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
}

func NewHTTPClient(timeout, dialTimeout time.Duration, sizeCap int64) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap:   sizeCap,
		userAgent: defaultUserAgent,
	}
}

// WithCookieJar returns a copy of h with its own empty cookie jar. The copy
// shares the connection pool with h.
func (h *HTTPClient) WithCookieJar() (*HTTPClient, error) {
	// storefronts set session cookies on the first page and redirect without them
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	hc := *h.client
	hc.Jar = jar
	cp := *h
	cp.client = &hc
	return &cp, nil
}

// WithUserAgent overrides the User-Agent header sent with every request.
func (h *HTTPClient) WithUserAgent(ua string) *HTTPClient {
	if ua != "" {
		h.userAgent = ua
	}
	return h
}

// ErrBodyTooLarge is returned by a body read once more than the size cap
// bytes are available.
var ErrBodyTooLarge = errors.New("response body exceeds size cap")

// Fetch issues a GET and returns the (size capped) body, the final URL after
// redirects, the content type and the time to first byte. Any status outside
// 200-299 is a *StatusError.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, time.Duration, error) {
	start := time.Now()
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, "", "", 0, fmt.Errorf("invalid url %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", "", 0, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, "", "", 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, "", "", 0, &StatusError{Code: resp.StatusCode}
	}

	var body io.ReadCloser = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, "", "", 0, err
		}
		body = &gzipBody{Reader: gz, raw: resp.Body}
	}

	finalURL := resp.Request.URL.String()
	elapsed := time.Since(start)
	return &limitedBody{r: body, n: h.sizeCap, c: body}, finalURL, resp.Header.Get("Content-Type"), elapsed, nil
}

// limitedBody yields at most n bytes, then ErrBodyTooLarge if r has more.
type limitedBody struct {
	r io.Reader
	n int64
	c io.Closer
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.n <= 0 {
		var one [1]byte
		n, err := b.r.Read(one[:])
		if n > 0 {
			return 0, ErrBodyTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > b.n {
		p = p[:b.n]
	}
	n, err := b.r.Read(p)
	b.n -= int64(n)
	return n, err
}

func (b *limitedBody) Close() error { return b.c.Close() }

type gzipBody struct {
	*gzip.Reader
	raw io.Closer
}

func (g *gzipBody) Close() error {
	g.Reader.Close()
	return g.raw.Close()
}
