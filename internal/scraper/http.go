package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"litenews-scraper/internal/config"
	"litenews-scraper/internal/models"
)

// Fetcher retrieves article HTML over a pooled HTTP client with
// browser-like headers, a response size cap, and retry with backoff on
// server errors. When enabled, a headless-browser fallback handles
// pages the plain client cannot get past.
type Fetcher struct {
	client  *http.Client
	cfg     config.ScrapeConfig
	browser *BrowserFetcher
}

// NewFetcher builds a fetcher from the scrape config.
func NewFetcher(cfg config.ScrapeConfig) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	f := &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		cfg: cfg,
	}
	if cfg.BrowserFallback {
		f.browser = NewBrowserFetcher(cfg)
	}
	return f
}

// Fetch retrieves the HTML at targetURL. Server errors are retried with
// exponential backoff up to the configured limit; 403/406 responses are
// handed to the browser fallback when one is configured.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	html, err := f.fetchOnce(ctx, targetURL, 0)
	if err == nil {
		return html, nil
	}

	if f.browser != nil && isBlockedStatus(err) {
		return f.browser.Fetch(ctx, targetURL)
	}
	return "", err
}

func (f *Fetcher) fetchOnce(ctx context.Context, targetURL string, attempt int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", &models.InvalidURLError{URL: targetURL, Err: err}
	}
	f.setRequestHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return f.retryWithBackoff(ctx, targetURL, attempt, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return "", &models.HTTPError{StatusCode: resp.StatusCode, URL: targetURL}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("non-HTML content-type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.cfg.SizeLimitBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

func (f *Fetcher) retryWithBackoff(ctx context.Context, targetURL string, attempt, status int) (string, error) {
	if attempt >= f.cfg.MaxRetries {
		return "", &models.HTTPError{StatusCode: status, URL: targetURL, Err: fmt.Errorf("max retries exceeded")}
	}

	delay := time.Duration(1000*(1<<attempt)) * time.Millisecond
	if delay > 5*time.Second {
		delay = 5 * time.Second
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return f.fetchOnce(ctx, targetURL, attempt+1)
}

// setRequestHeaders sets browser-like headers on the request.
func (f *Fetcher) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

// isBlockedStatus reports whether err is an HTTP status that a rendered
// browser session sometimes gets past.
func isBlockedStatus(err error) bool {
	var httpErr *models.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == http.StatusForbidden || httpErr.StatusCode == http.StatusNotAcceptable
}
