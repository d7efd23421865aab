package scraper

import "sync"

// DedupIndex is the in-memory set of content fingerprints of every
// article known to be durably saved. It is seeded once per run from the
// store and mutated only after a successful persist, so membership
// always implies an existing record. Safe for concurrent use.
type DedupIndex struct {
	mu     sync.Mutex
	hashes map[string]bool
}

// NewDedupIndex returns an empty index.
func NewDedupIndex() *DedupIndex {
	return &DedupIndex{hashes: make(map[string]bool)}
}

// SeedRecord carries the fields of one persisted record the index
// needs at seeding time. HasAuthors reports whether the record's JSON
// carried a non-null authors field, the marker separating the current
// schema from legacy records written before hashes were stored.
type SeedRecord struct {
	Hash       string
	HasAuthors bool
	Text       string
}

// Seed registers one persisted record. Records in the current schema
// contribute their stored hash as-is; legacy records get their hash
// recomputed from the stored text.
func (d *DedupIndex) Seed(rec SeedRecord) {
	if rec.Hash != "" && rec.HasAuthors {
		d.Add(rec.Hash)
		return
	}
	d.Add(HashContent(rec.Text))
}

// Add inserts a fingerprint.
func (d *DedupIndex) Add(hash string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hashes[hash] = true
}

// Contains reports whether a fingerprint is already known.
func (d *DedupIndex) Contains(hash string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hashes[hash]
}

// Len returns the number of known fingerprints.
func (d *DedupIndex) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.hashes)
}
