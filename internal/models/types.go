package models

import "strconv"

// DefaultProductSlots is the number of (title, image) column pairs per row.
const DefaultProductSlots = 5

type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Complete reports whether every contact field has been found.
func (c ContactInfo) Complete() bool {
	return c.Email != "" && c.Facebook != "" && c.Twitter != ""
}

type ProductRecord struct {
	Title string `json:"title,omitempty"`
	Image string `json:"image,omitempty"`
}

type StoreRecord struct {
	URL      string          `json:"url"`
	Contact  ContactInfo     `json:"contact"`
	Products []ProductRecord `json:"products"`
}

var contactColumns = []string{"url", "email", "facebook", "twitter"}

// Header returns the column names of a store table with n product slots.
func Header(n int) []string {
	out := make([]string, 0, len(contactColumns)+2*n)
	out = append(out, contactColumns...)
	for i := 1; i <= n; i++ {
		idx := strconv.Itoa(i)
		out = append(out, "title "+idx, "image "+idx)
	}
	return out
}

// Row flattens the record into exactly len(Header(n)) values. Products past
// n are dropped and missing ones are written as empty pairs.
func (s StoreRecord) Row(n int) []string {
	out := make([]string, 0, len(contactColumns)+2*n)
	out = append(out, s.URL, s.Contact.Email, s.Contact.Facebook, s.Contact.Twitter)
	for i := 0; i < n; i++ {
		var p ProductRecord
		if i < len(s.Products) {
			p = s.Products[i]
		}
		out = append(out, p.Title, p.Image)
	}
	return out
}

// StoreFromRow is the inverse of Row for a header produced by Header.
func StoreFromRow(header, row []string) StoreRecord {
	var s StoreRecord
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	for i, col := range header {
		switch col {
		case "url":
			s.URL = get(i)
		case "email":
			s.Contact.Email = get(i)
		case "facebook":
			s.Contact.Facebook = get(i)
		case "twitter":
			s.Contact.Twitter = get(i)
		}
	}
	n := (len(header) - len(contactColumns)) / 2
	for i := 0; i < n; i++ {
		base := len(contactColumns) + 2*i
		s.Products = append(s.Products, ProductRecord{Title: get(base), Image: get(base + 1)})
	}
	return s
}
