// Package models defines the article records exchanged between the
// extraction pipeline, the crawl driver, and the on-disk store.
package models

// Link is one outbound hyperlink found inside an article, already
// resolved to an absolute URL.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Article is the persisted record for one scraped article. The JSON
// field names match the files written by earlier runs, so records on
// disk stay readable across versions. Authors is always serialized,
// even when empty: its presence marks the current schema at
// dedup-index seeding time.
type Article struct {
	URL       string   `json:"url"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Authors   []string `json:"authors"`
	Text      string   `json:"text"`
	Links     []Link   `json:"links"`
	Hash      string   `json:"hash"`
	ScrapedAt string   `json:"scraped_at"`
}

// ExtractionResult holds the raw per-field output of the selector
// cascades before sentinel defaults are applied. Empty strings mean
// "no strategy matched"; the pipeline, not the extractor, decides what
// to substitute.
type ExtractionResult struct {
	Title   string
	Date    string
	Authors []string
	Text    string
	Links   []Link
}

// Status tags the terminal state of one article's trip through the
// pipeline.
type Status string

const (
	StatusAccepted  Status = "accepted"
	StatusDuplicate Status = "duplicate"
	StatusError     Status = "error"
)

// Outcome is what the pipeline returns per article: either an accepted
// Article, or a skip decision with its reason.
type Outcome struct {
	Status  Status
	Article *Article
	Err     error
}
