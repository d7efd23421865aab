// Package scraper text helpers shared by the field extractor and the
// byline normalizer.
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// collapseWhitespace joins all whitespace-separated runs in s with
// single spaces, mirroring how byline elements render their text nodes.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// selectionText returns the trimmed text of a selection.
func selectionText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// cascade runs one extraction strategy per selector, in order, and
// returns the first non-empty result. A strategy is the accessor
// applied to the selector's first match; an absent match or empty text
// just moves the cascade along.
func cascade(doc *goquery.Document, selectors []string, accessor func(*goquery.Selection) string) string {
	for _, selector := range selectors {
		match := doc.Find(selector).First()
		if match.Length() == 0 {
			continue
		}
		if v := accessor(match); v != "" {
			return v
		}
	}
	return ""
}
