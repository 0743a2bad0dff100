package resolver

import (
	"context"
)

// fakePages serves canned page text and records every requested URL.
type fakePages struct {
	pages map[string]string
	calls []string
}

func newFakePages(pages map[string]string) *fakePages {
	return &fakePages{pages: pages}
}

func (f *fakePages) FetchPage(_ context.Context, url string) (string, bool) {
	f.calls = append(f.calls, url)
	text, ok := f.pages[url]
	return text, ok
}
