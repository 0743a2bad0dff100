// Package extract pulls contact details and catalog handles out of raw page
// text. Every function is pure: it sees the text exactly as the server sent
// it, markup included.
package extract

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)
	twitterRe  = regexp.MustCompile(`(?i)https?://(?:www\.)?twitter\.com/[a-zA-Z0-9_]+`)
	facebookRe = regexp.MustCompile(`(?i)https?://(?:www\.)?facebook\.com/[a-zA-Z0-9_]+`)
	handleRe   = regexp.MustCompile(`/collections/all/products/([a-zA-Z0-9_-]+)"`)
)

// image names like logo@2x.png look like addresses
var imageSuffixes = []string{"jpg", "jpeg", "png", "gif", "bmp"}

// Email returns the first address-shaped token in text that is not an image
// file name.
func Email(text string) (string, bool) {
	for _, candidate := range emailRe.FindAllString(text, -1) {
		if !isImageName(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isImageName(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range imageSuffixes {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// TwitterLink returns the first absolute twitter.com profile URL in text.
func TwitterLink(text string) (string, bool) {
	return first(twitterRe, text)
}

// FacebookLink returns the first absolute facebook.com profile URL in text.
func FacebookLink(text string) (string, bool) {
	return first(facebookRe, text)
}

func first(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindString(text)
	return m, m != ""
}

// ProductHandles returns up to limit distinct handles linked from a
// /collections/all listing, in the order they first appear.
func ProductHandles(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	var out []string
	for _, m := range handleRe.FindAllStringSubmatch(text, -1) {
		out = AppendUnique(out, m[1])
		if len(out) == limit {
			break
		}
	}
	return out
}

// AppendUnique appends s to list unless it is already present.
func AppendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
