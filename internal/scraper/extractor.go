package scraper

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"litenews-scraper/internal/config"
	"litenews-scraper/internal/models"
)

// FieldExtractor pulls the structured fields out of a parsed article
// page. Each field runs its own selector cascade; a field with no match
// stays empty here and gets its sentinel at the pipeline boundary.
type FieldExtractor struct {
	cfg        config.ExtractConfig
	normalizer *AuthorNormalizer
	sanitizer  *bluemonday.Policy
}

// NewFieldExtractor builds an extractor from the extraction config.
func NewFieldExtractor(cfg config.ExtractConfig) *FieldExtractor {
	return &FieldExtractor{
		cfg:        cfg,
		normalizer: NewAuthorNormalizer(cfg),
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// Extract runs every field cascade over the document. It never fails:
// absent fields come back empty.
func (e *FieldExtractor) Extract(doc *goquery.Document, pageURL string) models.ExtractionResult {
	return models.ExtractionResult{
		Title:   e.extractTitle(doc),
		Date:    e.extractDate(doc),
		Authors: e.extractAuthors(doc),
		Text:    e.extractBody(doc, pageURL),
	}
}

// extractTitle tries the level-1 heading first, then the document
// title, then article-title / headline class hints.
func (e *FieldExtractor) extractTitle(doc *goquery.Document) string {
	return cascade(doc, titleSelectors, selectionText)
}

// extractDate tries time elements, then timestamp/date class hints,
// then any element carrying a machine-readable datetime attribute. The
// datetime attribute wins over display text when both exist.
func (e *FieldExtractor) extractDate(doc *goquery.Document) string {
	return cascade(doc, dateSelectors, func(s *goquery.Selection) string {
		if attr, ok := s.Attr(DatetimeAttr); ok && strings.TrimSpace(attr) != "" {
			return strings.TrimSpace(attr)
		}
		return selectionText(s)
	})
}

// extractAuthors walks the author selector groups in order. The first
// group that yields at least one normalized name wins; later groups are
// not consulted. Names are appended in document order and de-duplicated
// by exact string match across all matched elements.
func (e *FieldExtractor) extractAuthors(doc *goquery.Document) []string {
	for _, selector := range authorSelectors {
		var authors []string
		seen := make(map[string]bool)

		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			byline := collapseWhitespace(s.Text())
			for _, name := range e.normalizer.Normalize(byline) {
				if seen[name] {
					continue
				}
				seen[name] = true
				authors = append(authors, name)
			}
		})

		if len(authors) > 0 {
			return authors
		}
	}
	return nil
}

// extractBody finds the first body container holding at least one
// non-empty paragraph and joins the paragraphs with blank lines. With
// no matching container it falls back to every paragraph in the
// document, then (when enabled) to a readability pass.
func (e *FieldExtractor) extractBody(doc *goquery.Document, pageURL string) string {
	for _, selector := range bodySelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		if text := joinParagraphs(container); text != "" {
			return text
		}
	}

	if text := joinParagraphs(doc.Selection); text != "" {
		return text
	}

	if e.cfg.ReadabilityFallback {
		return e.readabilityText(doc, pageURL)
	}
	return ""
}

// joinParagraphs collects the trimmed text of every non-empty <p>
// under the selection, separated by blank lines.
func joinParagraphs(container *goquery.Selection) string {
	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := selectionText(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, ParagraphSeparator)
}

// readabilityText re-renders the document and lets readability recover
// a body the cascade could not. Its HTML content is stripped to plain
// text before use.
func (e *FieldExtractor) readabilityText(doc *goquery.Document, pageURL string) string {
	rendered, err := doc.Html()
	if err != nil {
		return ""
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(rendered), parsed)
	if err != nil {
		return ""
	}
	text := e.sanitizer.Sanitize(article.Content)
	return strings.TrimSpace(html.UnescapeString(text))
}
