// Package store persists articles as one JSON file per record, named
// by the article's content hash, and reads them back to seed the dedup
// index at startup.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"litenews-scraper/internal/models"
	"litenews-scraper/internal/scraper"
)

// FileStore writes and reads article records under a single directory.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates the output directory if needed and returns a
// store over it.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Save writes one article to <dir>/<hash>.json, indented for human
// inspection. The write goes through a temp file and rename so a crash
// never leaves a half-written record that would poison later seeding.
func (s *FileStore) Save(article *models.Article) error {
	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("encode article: %w", err)
	}

	path := filepath.Join(s.dir, article.Hash+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write article: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write article: %w", err)
	}
	return nil
}

// seedRecord is the loose shape read back from disk at seeding time.
// Authors stays raw so a missing or null field (the legacy schema) is
// distinguishable from an empty list (the current schema).
type seedRecord struct {
	Hash    string          `json:"hash"`
	Authors json.RawMessage `json:"authors"`
	Text    string          `json:"text"`
}

// SeedIndex loads every persisted record's fingerprint into the index.
// Records in the current schema (stored hash plus a non-null authors
// field) contribute the stored hash directly; legacy records get theirs
// recomputed from the stored text. One unreadable file is logged and
// skipped, never fatal. Reads run in a bounded parallel group; the
// index serializes its own inserts.
func (s *FileStore) SeedIndex(index *scraper.DedupIndex, concurrency int) error {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan output dir: %w", err)
	}

	if concurrency < 1 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	var mu sync.Mutex
	skipped := 0

	for _, path := range paths {
		path := path
		g.Go(func() error {
			rec, err := readSeedRecord(path)
			if err != nil {
				s.logger.Warn("skipping unreadable record", "path", path, "error", err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			index.Seed(rec)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if skipped > 0 {
		s.logger.Info("seeded dedup index with skips", "records", index.Len(), "skipped", skipped)
	}
	return nil
}

// readSeedRecord decodes the seeding fields of one persisted file.
func readSeedRecord(path string) (scraper.SeedRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scraper.SeedRecord{}, err
	}

	var rec seedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return scraper.SeedRecord{}, err
	}

	hasAuthors := len(rec.Authors) > 0 && string(rec.Authors) != "null"
	return scraper.SeedRecord{
		Hash:       rec.Hash,
		HasAuthors: hasAuthors,
		Text:       rec.Text,
	}, nil
}
