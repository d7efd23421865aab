package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"litenews-scraper/internal/models"
)

// LinkFilter collects an article's outbound links, resolving relative
// hrefs against the article URL and dropping known navigational
// boilerplate.
type LinkFilter struct {
	blockList map[string]bool
}

// NewLinkFilter builds a filter over a trailing-slash-normalized block
// list (see config.NormalizeBlockList).
func NewLinkFilter(blockList map[string]bool) *LinkFilter {
	return &LinkFilter{blockList: blockList}
}

// ExtractLinks returns every anchor with an href, in document order,
// minus block-listed URLs. Repeated links are kept: the record reflects
// the page, downstream consumers de-duplicate if they care.
func (f *LinkFilter) ExtractLinks(doc *goquery.Document, baseURL string) []models.Link {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	links := []models.Link{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		absolute := resolveHref(base, href)
		if absolute == "" {
			return
		}
		if f.blockList[strings.TrimRight(absolute, "/")] {
			return
		}
		links = append(links, models.Link{
			URL:  absolute,
			Text: selectionText(s),
		})
	})
	return links
}

// resolveHref resolves href against base, falling back to the raw href
// when either side does not parse.
func resolveHref(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
