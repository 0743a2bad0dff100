package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-crawler/internal/models"
)

func TestParseProduct(t *testing.T) {
	p := New()

	t.Run("title and first image", func(t *testing.T) {
		rec, err := p.ParseProduct([]byte(`{"product":{"title":"Linen Shirt","images":[{"src":"https://cdn.example.com/a.jpg"},{"src":"https://cdn.example.com/b.jpg"}]}}`))
		require.NoError(t, err)
		assert.Equal(t, models.ProductRecord{Title: "Linen Shirt", Image: "https://cdn.example.com/a.jpg"}, rec)
	})

	t.Run("no images", func(t *testing.T) {
		rec, err := p.ParseProduct([]byte(`{"product":{"title":"Mug","images":[]}}`))
		require.NoError(t, err)
		assert.Equal(t, models.ProductRecord{Title: "Mug"}, rec)
	})

	t.Run("image without src", func(t *testing.T) {
		rec, err := p.ParseProduct([]byte(`{"product":{"images":[{"id":1}]}}`))
		require.NoError(t, err)
		assert.Equal(t, models.ProductRecord{}, rec)
	})

	t.Run("no product key", func(t *testing.T) {
		rec, err := p.ParseProduct([]byte(`{"errors":"Not Found"}`))
		require.NoError(t, err)
		assert.Equal(t, models.ProductRecord{}, rec)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := p.ParseProduct([]byte(`<html>not json</html>`))
		assert.Error(t, err)
	})
}

const listingHTML = `<!doctype html><html><body>
<a href="/collections/frontpage/products/mug">Mug</a>
<a href="https://shop.example.com/products/linen-shirt?variant=1">Shirt</a>
<a href="/collections/frontpage/products/mug">Mug again</a>
<a href="/pages/about">About</a>
<a href="/products/tote/">Tote</a>
</body></html>`

func TestProductLinks(t *testing.T) {
	p := New()

	handles, err := p.ProductLinks(listingHTML, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"mug", "linen-shirt", "tote"}, handles)

	handles, err = p.ProductLinks(listingHTML, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"mug", "linen-shirt"}, handles)

	handles, err = p.ProductLinks(listingHTML, 0)
	require.NoError(t, err)
	assert.Empty(t, handles)
}
