package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	t.Run("skips image names", func(t *testing.T) {
		got, ok := Email(`<a href="mailto:foo@bar.com">mail</a> <img src="icon@2x.png">`)
		assert.True(t, ok)
		assert.Equal(t, "foo@bar.com", got)
	})

	t.Run("image name first", func(t *testing.T) {
		got, ok := Email(`<img src="/cdn/logo@2x.PNG"> write to hello@shop.example.com`)
		assert.True(t, ok)
		assert.Equal(t, "hello@shop.example.com", got)
	})

	t.Run("only images", func(t *testing.T) {
		got, ok := Email(`banner@3x.jpeg thumb@2x.gif`)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, ok := Email(`<html><body>Call us at 555-0100</body></html>`)
		assert.False(t, ok)
	})
}

func TestSocialLinks(t *testing.T) {
	text := `<a href="https://www.Twitter.com/acme_shop">tw</a>
<a href="http://facebook.com/acmeshop?ref=x">fb</a>
<a href="https://twitter.com/second">tw2</a>`

	tw, ok := TwitterLink(text)
	assert.True(t, ok)
	assert.Equal(t, "https://www.Twitter.com/acme_shop", tw)

	fb, ok := FacebookLink(text)
	assert.True(t, ok)
	assert.Equal(t, "http://facebook.com/acmeshop", fb)

	_, ok = TwitterLink(`<a href="https://instagram.com/acme">ig</a>`)
	assert.False(t, ok)
	_, ok = FacebookLink(`facebook.com/acme without scheme`)
	assert.False(t, ok)
}

func TestProductHandles(t *testing.T) {
	text := `<a href="/collections/all/products/a">A</a>
<a href="/collections/all/products/b">B</a>
<a href="/collections/all/products/a">A again</a>`

	assert.Equal(t, []string{"a", "b"}, ProductHandles(text, 5))
	assert.Equal(t, []string{"a"}, ProductHandles(text, 1))
	assert.Empty(t, ProductHandles(text, 0))
	assert.Empty(t, ProductHandles(`<a href="/products/a">A</a>`, 5))
}

func TestProductHandlesCharset(t *testing.T) {
	text := `"/collections/all/products/linen-shirt_2" "/collections/all/products/bad handle"`
	assert.Equal(t, []string{"linen-shirt_2"}, ProductHandles(text, 5))
}

func TestAppendUnique(t *testing.T) {
	list := AppendUnique(nil, "x")
	list = AppendUnique(list, "y")
	list = AppendUnique(list, "x")
	assert.Equal(t, []string{"x", "y"}, list)
}
