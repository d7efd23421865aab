package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"litenews-scraper/internal/config"
	"litenews-scraper/internal/models"
)

// Persister is the external collaborator that durably saves accepted
// articles. The store package provides the file-backed implementation.
type Persister interface {
	Save(article *models.Article) error
}

// Pipeline runs one parsed document through extraction, link filtering,
// hashing, and the dedup check, and hands accepted articles to the
// persister. It is safe for concurrent use across independent articles;
// the shared index serializes its own access.
type Pipeline struct {
	cfg       config.ExtractConfig
	extractor *FieldExtractor
	links     *LinkFilter
	index     *DedupIndex
	store     Persister
	now       func() time.Time
}

// NewPipeline wires the extraction core to a dedup index and a
// persister. The index is owned by the caller and must already be
// seeded.
func NewPipeline(cfg config.ExtractConfig, index *DedupIndex, store Persister) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		extractor: NewFieldExtractor(cfg),
		links:     NewLinkFilter(cfg.BlockList),
		index:     index,
		store:     store,
		now:       time.Now,
	}
}

// Process runs one article through the
// extracted -> {duplicate, error, accepted} state machine. Field
// extraction never fails: empty fields take their sentinel defaults
// here, at the boundary. A duplicate fingerprint short-circuits before
// persistence; a persistence failure leaves the index untouched.
func (p *Pipeline) Process(doc *goquery.Document, articleURL string) models.Outcome {
	result := p.extractor.Extract(doc, articleURL)
	result.Links = p.links.ExtractLinks(doc, articleURL)

	article := p.materialize(result, articleURL)

	if p.index.Contains(article.Hash) {
		return models.Outcome{Status: models.StatusDuplicate, Article: article}
	}

	if err := p.store.Save(article); err != nil {
		return models.Outcome{Status: models.StatusError, Err: &models.PersistenceError{Path: article.Hash, Err: err}}
	}
	p.index.Add(article.Hash)

	return models.Outcome{Status: models.StatusAccepted, Article: article}
}

// materialize turns the transient extraction result into a candidate
// Article, applying sentinel defaults and computing the fingerprint.
func (p *Pipeline) materialize(result models.ExtractionResult, articleURL string) *models.Article {
	now := p.now().UTC().Format(time.RFC3339)

	title := result.Title
	if title == "" {
		title = p.cfg.DefaultTitle
	}

	text := result.Text
	if text == "" {
		text = p.cfg.DefaultText
	}

	date := normalizeDate(result.Date)
	if date == "" {
		date = now
	}

	authors := result.Authors
	if authors == nil {
		authors = []string{}
	}

	links := result.Links
	if links == nil {
		links = []models.Link{}
	}

	return &models.Article{
		URL:       articleURL,
		Title:     title,
		Date:      date,
		Authors:   authors,
		Text:      text,
		Links:     links,
		Hash:      HashContent(text),
		ScrapedAt: now,
	}
}

// normalizeDate converts a raw extracted date to RFC3339 when it parses
// as a recognizable timestamp, and keeps the raw string otherwise.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return raw
}
