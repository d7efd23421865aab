// Package config builds the immutable configuration the scraper runs
// with: HTTP fetch settings, extraction rules, and crawl limits.
// Defaults mirror the lite.cnn.com deployment; env vars and an optional
// YAML file override them at process start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ScrapeConfig contains network-level scraping configuration.
type ScrapeConfig struct {
	UserAgent       string
	Timeout         time.Duration
	SizeLimitBytes  int
	MaxRetries      int
	RequestDelay    time.Duration
	BrowserFallback bool
	BrowserTimeout  time.Duration
}

// ExtractConfig contains the read-only rule tables the extraction core
// consults. It is constructed once and shared without synchronization.
type ExtractConfig struct {
	// BlockList holds trailing-slash-normalized URLs excluded from any
	// article's outbound links.
	BlockList map[string]bool

	// AuthorSuffixes are lower-cased generational suffix tokens that get
	// merged back onto the preceding name component ("John Smith, Jr.").
	AuthorSuffixes map[string]bool

	// AttributionToken is the wire-service byline suffix stripped from
	// author names and never emitted as a standalone author.
	AttributionToken string

	// DefaultTitle and DefaultText are the sentinel values applied at
	// the pipeline boundary when a field's whole cascade comes up empty.
	DefaultTitle string
	DefaultText  string

	// ReadabilityFallback enables a last-chance readability pass for the
	// article body before the DefaultText sentinel is used. Off by
	// default so body extraction stays byte-for-byte reproducible.
	ReadabilityFallback bool
}

// CrawlConfig contains crawl driver settings.
type CrawlConfig struct {
	HomepageURL       string
	FeedURL           string
	AllowedDomain     string
	ArticlePathHints  []string
	MaxArticlesPerRun int
	OutputDir         string
	SeedConcurrency   int
}

// Config is the full process configuration.
type Config struct {
	Scrape  ScrapeConfig
	Extract ExtractConfig
	Crawl   CrawlConfig
}

// DefaultScrapeConfig returns the default network configuration.
func DefaultScrapeConfig() ScrapeConfig {
	userAgent := os.Getenv("SCRAPE_USER_AGENT")
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; ArticleScraper/1.0)"
	}

	timeout := 30 * time.Second
	if env := os.Getenv("SCRAPE_TIMEOUT_MS"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Millisecond
		}
	}

	return ScrapeConfig{
		UserAgent:       userAgent,
		Timeout:         timeout,
		SizeLimitBytes:  6_000_000,
		MaxRetries:      2,
		RequestDelay:    2 * time.Second,
		BrowserFallback: false,
		BrowserTimeout:  40 * time.Second,
	}
}

// DefaultExtractConfig returns the extraction rule tables for CNN Lite.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		BlockList: NormalizeBlockList([]string{
			"https://www.cnn.com/",
			"https://www.cnn.com/terms",
			"https://www.cnn.com/privacy",
			"https://www.cnn.com/ad-choices",
		}),
		AuthorSuffixes: map[string]bool{
			"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
		},
		AttributionToken: "CNN",
		DefaultTitle:     "No title found",
		DefaultText:      "No text found",
	}
}

// DefaultCrawlConfig returns the default crawl driver settings.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		HomepageURL:   "https://lite.cnn.com",
		AllowedDomain: "cnn.com",
		ArticlePathHints: []string{
			"/202", "/article/", "/news/", "/politics/", "/business/", "/world/",
		},
		MaxArticlesPerRun: 110,
		OutputDir:         "cnn-lite-articles",
		SeedConcurrency:   8,
	}
}

// Default returns the full default configuration.
func Default() Config {
	return Config{
		Scrape:  DefaultScrapeConfig(),
		Extract: DefaultExtractConfig(),
		Crawl:   DefaultCrawlConfig(),
	}
}

// NormalizeBlockList strips trailing slashes so equivalent URLs with and
// without one compare equal.
func NormalizeBlockList(urls []string) map[string]bool {
	out := make(map[string]bool, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out[strings.TrimRight(u, "/")] = true
	}
	return out
}

// fileConfig is the YAML shape of an optional config file. Only the
// fields present in the file override the defaults.
type fileConfig struct {
	Homepage         string   `yaml:"homepage"`
	Feed             string   `yaml:"feed"`
	AllowedDomain    string   `yaml:"allowed_domain"`
	ArticlePathHints []string `yaml:"article_path_hints"`
	MaxArticles      int      `yaml:"max_articles"`
	OutputDir        string   `yaml:"output_dir"`
	RequestDelayMs   int      `yaml:"request_delay_ms"`
	BrowserFallback  *bool    `yaml:"browser_fallback"`
	Readability      *bool    `yaml:"readability_fallback"`
	BlockList        []string `yaml:"block_list"`
	AttributionToken string   `yaml:"attribution_token"`
	AuthorSuffixes   []string `yaml:"author_suffixes"`
}

// LoadFile overlays settings from a YAML file onto cfg.
func LoadFile(cfg Config, path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Homepage != "" {
		cfg.Crawl.HomepageURL = fc.Homepage
	}
	if fc.Feed != "" {
		cfg.Crawl.FeedURL = fc.Feed
	}
	if fc.AllowedDomain != "" {
		cfg.Crawl.AllowedDomain = fc.AllowedDomain
	}
	if len(fc.ArticlePathHints) > 0 {
		cfg.Crawl.ArticlePathHints = fc.ArticlePathHints
	}
	if fc.MaxArticles > 0 {
		cfg.Crawl.MaxArticlesPerRun = fc.MaxArticles
	}
	if fc.OutputDir != "" {
		cfg.Crawl.OutputDir = fc.OutputDir
	}
	if fc.RequestDelayMs > 0 {
		cfg.Scrape.RequestDelay = time.Duration(fc.RequestDelayMs) * time.Millisecond
	}
	if fc.BrowserFallback != nil {
		cfg.Scrape.BrowserFallback = *fc.BrowserFallback
	}
	if fc.Readability != nil {
		cfg.Extract.ReadabilityFallback = *fc.Readability
	}
	if len(fc.BlockList) > 0 {
		cfg.Extract.BlockList = NormalizeBlockList(fc.BlockList)
	}
	if fc.AttributionToken != "" {
		cfg.Extract.AttributionToken = fc.AttributionToken
	}
	if len(fc.AuthorSuffixes) > 0 {
		suffixes := make(map[string]bool, len(fc.AuthorSuffixes))
		for _, s := range fc.AuthorSuffixes {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				suffixes[s] = true
			}
		}
		cfg.Extract.AuthorSuffixes = suffixes
	}

	return cfg, nil
}
