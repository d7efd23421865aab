package scraper

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the lower-case hex SHA-256 digest of the article
// text. It is the article's dedup identity: stable across runs and
// platforms for identical UTF-8 bytes. Legacy records that were written
// without a stored hash get theirs recomputed through this same
// function at index-seeding time, so old and new identities agree.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
