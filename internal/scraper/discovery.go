package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"litenews-scraper/internal/config"
)

// Discoverer finds candidate article URLs to crawl, either from the
// site homepage or from an RSS/Atom feed.
type Discoverer struct {
	cfg config.CrawlConfig
}

// NewDiscoverer builds a discoverer from the crawl config.
func NewDiscoverer(cfg config.CrawlConfig) *Discoverer {
	return &Discoverer{cfg: cfg}
}

// FromHomepage scans every anchor on the homepage document and keeps
// the URLs that look like articles: on the configured news domain (the
// exact host or a subdomain) and carrying one of the article path
// hints. Order follows the page; duplicates are dropped.
func (d *Discoverer) FromHomepage(doc *goquery.Document, homepageURL string) []string {
	base, err := url.Parse(homepageURL)
	if err != nil {
		base = nil
	}

	var found []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		absolute := resolveHref(base, href)
		if absolute == "" || seen[absolute] {
			return
		}
		if !d.looksLikeArticle(absolute) {
			return
		}
		seen[absolute] = true
		found = append(found, absolute)
	})

	return found
}

// FromFeed fetches an RSS/Atom feed and returns its item links, in feed
// order, filtered by the same article heuristics as the homepage scan.
func (d *Discoverer) FromFeed(ctx context.Context, feedURL string) ([]string, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	var found []string
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" || seen[link] {
			continue
		}
		if !d.looksLikeArticle(link) {
			continue
		}
		seen[link] = true
		found = append(found, link)
	}
	return found, nil
}

// looksLikeArticle applies the domain and path-hint heuristics.
func (d *Discoverer) looksLikeArticle(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := parsed.Hostname()
	if host != d.cfg.AllowedDomain && !strings.HasSuffix(host, "."+d.cfg.AllowedDomain) {
		return false
	}

	for _, hint := range d.cfg.ArticlePathHints {
		if strings.Contains(rawURL, hint) {
			return true
		}
	}
	return false
}
