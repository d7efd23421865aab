package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"litenews-scraper/internal/models"
	"litenews-scraper/internal/scraper"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := NewFileStore(dir, logger)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return s, dir
}

func TestFileStore_Save(t *testing.T) {
	s, dir := newTestStore(t)

	article := &models.Article{
		URL:       "https://lite.cnn.com/sample",
		Title:     "Sample Title",
		Date:      "2026-01-05T12:00:00Z",
		Authors:   []string{},
		Text:      "Paragraph one.",
		Links:     []models.Link{{URL: "https://www.cnn.com/world/story", Text: "Story"}},
		Hash:      scraper.HashContent("Paragraph one."),
		ScrapedAt: "2026-01-05T12:34:56Z",
	}

	if err := s.Save(article); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(dir, article.Hash+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("record not written at %s: %v", path, err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("record is not valid JSON: %v", err)
	}

	// Field names are the on-disk contract shared with earlier runs.
	for _, key := range []string{"url", "title", "date", "authors", "text", "links", "hash", "scraped_at"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("record missing %q field", key)
		}
	}
	if string(decoded["authors"]) == "null" {
		t.Error("authors must serialize as an array even when empty")
	}
}

func TestFileStore_SeedIndex(t *testing.T) {
	s, dir := newTestStore(t)

	// Current-schema record: stored hash plus authors field present.
	writeFile(t, dir, "stored.json", `{"hash": "storedhash", "authors": [], "text": "ignored"}`)
	// Legacy record without authors: hash recomputed from text.
	writeFile(t, dir, "legacy.json", `{"text": "legacy text"}`)
	// Record with explicit null authors is legacy too.
	writeFile(t, dir, "nullauthors.json", `{"hash": "otherhash", "authors": null, "text": "null text"}`)
	// Corrupt file: logged and skipped.
	writeFile(t, dir, "corrupt.json", `{not json`)

	index := scraper.NewDedupIndex()
	if err := s.SeedIndex(index, 4); err != nil {
		t.Fatalf("SeedIndex failed: %v", err)
	}

	if !index.Contains("storedhash") {
		t.Error("stored hash not used directly")
	}
	if index.Contains(scraper.HashContent("ignored")) {
		t.Error("stored-hash record must not be recomputed from text")
	}
	if !index.Contains(scraper.HashContent("legacy text")) {
		t.Error("legacy record hash not recomputed from text")
	}
	if !index.Contains(scraper.HashContent("null text")) {
		t.Error("null-authors record must be treated as legacy")
	}
	if index.Contains("otherhash") {
		t.Error("null-authors record used its stored hash")
	}
	if index.Len() != 3 {
		t.Errorf("Len = %d, want 3 (corrupt file skipped)", index.Len())
	}
}

func TestFileStore_SeedIndexEmptyDir(t *testing.T) {
	s, _ := newTestStore(t)

	index := scraper.NewDedupIndex()
	if err := s.SeedIndex(index, 4); err != nil {
		t.Fatalf("SeedIndex on empty dir failed: %v", err)
	}
	if index.Len() != 0 {
		t.Errorf("Len = %d, want 0", index.Len())
	}
}

func TestFileStore_SaveThenSeedRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	article := &models.Article{
		URL:     "https://lite.cnn.com/sample",
		Title:   "Sample",
		Authors: []string{"Jane Doe"},
		Text:    "Body text.",
		Links:   []models.Link{},
		Hash:    scraper.HashContent("Body text."),
	}
	if err := s.Save(article); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	index := scraper.NewDedupIndex()
	if err := s.SeedIndex(index, 1); err != nil {
		t.Fatalf("SeedIndex failed: %v", err)
	}
	if !index.Contains(article.Hash) {
		t.Error("freshly saved article not found by reseeding")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
