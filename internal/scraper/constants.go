// Package scraper implements the article extraction and deduplication
// core: selector-cascade field extraction, byline normalization,
// outbound-link filtering, content hashing, and the in-memory dedup
// index, plus the fetch transport the crawl driver uses.
package scraper

// Selector cascades, tried in order; the first strategy yielding
// non-empty text wins. The ordering is part of the observable contract:
// changing it changes which field value a layout produces.
var (
	titleSelectors = []string{"h1", "title", ".article-title", `[class*="headline"]`}

	dateSelectors = []string{"time", ".timestamp", `[class*="date"]`, "[datetime]"}

	// Author selectors are group-scoped: the first selector matching at
	// least one byline stops the cascade. .byline--lite is the class
	// CNN Lite uses.
	authorSelectors = []string{".author", `[class*="author"]`, `[rel="author"]`, ".byline--lite"}

	bodySelectors = []string{"article", ".article-body", `[class*="article-content"]`, `[class*="story-body"]`, "main"}
)

// Text assembly constants.
const (
	ParagraphSeparator = "\n\n"
	DatetimeAttr       = "datetime"
)
