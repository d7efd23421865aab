package scraper

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"

	"litenews-scraper/internal/config"
)

// BrowserFetcher retrieves page HTML through a headless browser. It is
// the fallback for pages that refuse the plain HTTP client; the crawl
// stays on the cheap path unless a fetch comes back blocked.
type BrowserFetcher struct {
	cfg config.ScrapeConfig
}

// NewBrowserFetcher builds a browser fetcher from the scrape config.
func NewBrowserFetcher(cfg config.ScrapeConfig) *BrowserFetcher {
	return &BrowserFetcher{cfg: cfg}
}

// Fetch navigates to targetURL in a fresh headless session and returns
// the rendered document HTML.
func (b *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.BrowserTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(b.cfg.UserAgent),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser navigation failed: %w", err)
	}
	return html, nil
}
