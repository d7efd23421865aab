// Command scraper crawls a lite news site: it discovers article links,
// extracts structured fields from each page, and saves new articles as
// JSON records, skipping any whose text is already known.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"litenews-scraper/internal/config"
	"litenews-scraper/internal/models"
	"litenews-scraper/internal/scraper"
	"litenews-scraper/internal/store"
)

type flags struct {
	configFile  string
	homepage    string
	feed        string
	outputDir   string
	maxArticles int
	delayMs     int
	browser     bool
	readability bool
	logLevel    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configFile, "config", "", "optional: path to YAML config file")
	flag.StringVar(&f.homepage, "homepage", "", "homepage URL to discover article links from")
	flag.StringVar(&f.feed, "feed", "", "optional: RSS/Atom feed URL to discover article links from")
	flag.StringVar(&f.outputDir, "out", "", "directory for article JSON records")
	flag.IntVar(&f.maxArticles, "maxArticles", 0, "max articles to process per run")
	flag.IntVar(&f.delayMs, "delayMs", 0, "delay between requests in milliseconds")
	flag.BoolVar(&f.browser, "browser", false, "enable headless-browser fetch fallback")
	flag.BoolVar(&f.readability, "readability", false, "enable readability body-text fallback")
	flag.StringVar(&f.logLevel, "logLevel", "info", "log level: debug|info|warn|error")
	flag.Parse()
	return f
}

func buildConfig(f flags, logger *slog.Logger) config.Config {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.LoadFile(cfg, f.configFile)
		if err != nil {
			logger.Error("config file rejected", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if f.homepage != "" {
		cfg.Crawl.HomepageURL = f.homepage
	}
	if f.feed != "" {
		cfg.Crawl.FeedURL = f.feed
	}
	if f.outputDir != "" {
		cfg.Crawl.OutputDir = f.outputDir
	}
	if f.maxArticles > 0 {
		cfg.Crawl.MaxArticlesPerRun = f.maxArticles
	}
	if f.delayMs > 0 {
		cfg.Scrape.RequestDelay = time.Duration(f.delayMs) * time.Millisecond
	}
	if f.browser {
		cfg.Scrape.BrowserFallback = true
	}
	if f.readability {
		cfg.Extract.ReadabilityFallback = true
	}
	return cfg
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	f := parseFlags()
	logger := newLogger(f.logLevel)
	cfg := buildConfig(f, logger)

	ctx := context.Background()

	fileStore, err := store.NewFileStore(cfg.Crawl.OutputDir, logger)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}

	index := scraper.NewDedupIndex()
	if err := fileStore.SeedIndex(index, cfg.Crawl.SeedConcurrency); err != nil {
		logger.Error("dedup index seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("dedup index seeded", "known", index.Len())

	fetcher := scraper.NewFetcher(cfg.Scrape)
	discoverer := scraper.NewDiscoverer(cfg.Crawl)
	pipeline := scraper.NewPipeline(cfg.Extract, index, fileStore)

	links, err := discoverArticles(ctx, cfg, fetcher, discoverer, logger)
	if err != nil {
		logger.Error("article discovery failed", "error", err)
		os.Exit(1)
	}
	if len(links) == 0 {
		logger.Warn("no article links found; the site structure may have changed")
		return
	}
	logger.Info("discovered article links", "count", len(links))

	if len(links) > cfg.Crawl.MaxArticlesPerRun {
		links = links[:cfg.Crawl.MaxArticlesPerRun]
	}

	accepted, duplicates, errored := 0, 0, 0
	for i, articleURL := range links {
		logger.Info("processing article", "n", i+1, "total", len(links), "url", articleURL)

		outcome := processOne(ctx, fetcher, pipeline, articleURL)
		switch outcome.Status {
		case models.StatusAccepted:
			accepted++
			logger.Info("saved article", "title", truncate(outcome.Title, 50), "hash", outcome.Hash)
		case models.StatusDuplicate:
			duplicates++
			logger.Info("skipping article with unchanged text", "title", truncate(outcome.Title, 50))
		default:
			errored++
			logger.Warn("skipping article", "url", articleURL, "error", outcome.Err)
		}

		// Politeness throttle between network calls.
		time.Sleep(cfg.Scrape.RequestDelay)
	}

	logger.Info("scrape run completed",
		"accepted", accepted, "duplicates", duplicates, "errors", errored,
		"outputDir", cfg.Crawl.OutputDir)
}

type runOutcome struct {
	Status models.Status
	Title  string
	Hash   string
	Err    error
}

// processOne fetches, parses, and pipelines a single article URL.
// Fetch and parse failures terminate in the error state without
// touching the index.
func processOne(ctx context.Context, fetcher *scraper.Fetcher, pipeline *scraper.Pipeline, articleURL string) runOutcome {
	html, err := fetcher.Fetch(ctx, articleURL)
	if err != nil {
		return runOutcome{Status: models.StatusError, Err: err}
	}

	doc, err := scraper.ParseDocument(html, articleURL)
	if err != nil {
		return runOutcome{Status: models.StatusError, Err: err}
	}

	outcome := pipeline.Process(doc, articleURL)
	result := runOutcome{Status: outcome.Status, Err: outcome.Err}
	if outcome.Article != nil {
		result.Title = outcome.Article.Title
		result.Hash = outcome.Article.Hash
	}
	return result
}

// discoverArticles prefers the feed when one is configured and falls
// back to scraping the homepage.
func discoverArticles(ctx context.Context, cfg config.Config, fetcher *scraper.Fetcher, discoverer *scraper.Discoverer, logger *slog.Logger) ([]string, error) {
	if cfg.Crawl.FeedURL != "" {
		links, err := discoverer.FromFeed(ctx, cfg.Crawl.FeedURL)
		if err == nil {
			return links, nil
		}
		logger.Warn("feed discovery failed, falling back to homepage", "error", err)
	}

	html, err := fetcher.Fetch(ctx, cfg.Crawl.HomepageURL)
	if err != nil {
		return nil, err
	}
	doc, err := scraper.ParseDocument(html, cfg.Crawl.HomepageURL)
	if err != nil {
		return nil, err
	}
	return discoverer.FromHomepage(doc, cfg.Crawl.HomepageURL), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
