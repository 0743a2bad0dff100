package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-crawler/internal/ioformats"
	"storefront-crawler/internal/models"
	"storefront-crawler/internal/resolver"
	"storefront-crawler/pkg/logger"
)

type stubPages map[string]string

func (s stubPages) FetchPage(_ context.Context, url string) (string, bool) {
	text, ok := s[url]
	return text, ok
}

func newTestMux() *http.ServeMux {
	pages := stubPages{
		"https://acme.test/":                  `hi@acme.test https://twitter.com/acme https://facebook.com/acme`,
		"https://acme.test/collections/all":   `"/collections/all/products/mug"`,
		"https://acme.test/products/mug.json": `{"product":{"title":"Mug"}}`,
	}
	return newMux(resolver.NewStoreResolver(pages, logger.Discard(), 2), logger.Discard(), 1)
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestMux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStoreEndpoint(t *testing.T) {
	mux := newTestMux()

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/store", strings.NewReader(`{"domain":"acme.test"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.StoreRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "hi@acme.test", got.Contact.Email)
	assert.Equal(t, []models.ProductRecord{{Title: "Mug"}, {}}, got.Products)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/store", strings.NewReader(`{"domain":"https://acme.test"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/store", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestBatchEndpoint(t *testing.T) {
	rr := httptest.NewRecorder()
	body := `{"domains":["acme.test","bad/domain","other.test"]}`
	newTestMux().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/stores/batch", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"url":"acme.test"`)
	assert.Contains(t, lines[1], `"url":"other.test"`)
}

func TestUploadEndpoint(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "stores.csv")
	require.NoError(t, err)
	fw.Write([]byte("url\nacme.test\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/stores/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	newTestMux().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	stores, err := ioformats.ReadStores(rr.Body)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "https://facebook.com/acme", stores[0].Contact.Facebook)
	assert.Equal(t, "Mug", stores[0].Products[0].Title)
}

func TestUploadMissingURLColumn(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "stores.csv")
	fw.Write([]byte("domain\nacme.test\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/stores/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	newTestMux().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
