package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"litenews-scraper/internal/models"
)

// ParseDocument parses fetched HTML into the document handle the
// extraction core queries.
func ParseDocument(html, pageURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &models.ParseError{URL: pageURL, Err: err}
	}
	return doc, nil
}
