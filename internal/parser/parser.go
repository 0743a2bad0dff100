package parser

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"storefront-crawler/internal/extract"
	"storefront-crawler/internal/models"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

// productPayload mirrors the parts of /products/<handle>.json we read.
type productPayload struct {
	Product *struct {
		Title  string `json:"title"`
		Images []struct {
			Src string `json:"src"`
		} `json:"images"`
	} `json:"product"`
}

// ParseProduct reads the title and first image of a product payload. Missing
// keys leave the matching field empty; only malformed JSON is an error.
func (p *Parser) ParseProduct(data []byte) (models.ProductRecord, error) {
	var payload productPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.ProductRecord{}, fmt.Errorf("decode product: %w", err)
	}
	if payload.Product == nil {
		return models.ProductRecord{}, nil
	}
	rec := models.ProductRecord{Title: payload.Product.Title}
	if len(payload.Product.Images) > 0 {
		rec.Image = payload.Product.Images[0].Src
	}
	return rec, nil
}

var productPathRe = regexp.MustCompile(`/products/([a-zA-Z0-9_-]+)/?$`)

// ProductLinks collects product handles from anchors in a listing page,
// whatever collection they are linked through. It is used when the page does
// not use /collections/all/products/ links.
func (p *Parser) ProductLinks(page string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var handles []string
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		m := productPathRe.FindStringSubmatch(u.Path)
		if m == nil {
			return true
		}
		handles = extract.AppendUnique(handles, m[1])
		return len(handles) < limit
	})
	return handles, nil
}
