package scraper

import (
	"regexp"
	"strings"

	"litenews-scraper/internal/config"
)

var (
	byPrefixRe    = regexp.MustCompile(`(?i)^\s*by\s+`)
	conjunctionRe = regexp.MustCompile(`(?i)\s+(?:and|&)\s+`)
)

// AuthorNormalizer turns a raw byline string into an ordered list of
// distinct person names. The splitting rules are a fixed table, not a
// heuristic: prefix strip, conjunction split, comma split with
// generational-suffix merge, attribution-token cleanup, in that order.
type AuthorNormalizer struct {
	suffixes    map[string]bool
	attribution string
	// attributionRe matches a trailing ", CNN"-style wire-service
	// suffix, anchored at the end of a name.
	attributionRe *regexp.Regexp
}

// NewAuthorNormalizer builds a normalizer from the extraction config.
func NewAuthorNormalizer(cfg config.ExtractConfig) *AuthorNormalizer {
	token := cfg.AttributionToken
	return &AuthorNormalizer{
		suffixes:      cfg.AuthorSuffixes,
		attribution:   token,
		attributionRe: regexp.MustCompile(`(?i),\s*` + regexp.QuoteMeta(token) + `\s*$`),
	}
}

// Normalize splits one raw byline into cleaned author names.
func (n *AuthorNormalizer) Normalize(byline string) []string {
	cleaned := strings.TrimSpace(byPrefixRe.ReplaceAllString(byline, ""))
	if cleaned == "" {
		return nil
	}

	segments := conjunctionRe.Split(cleaned, -1)
	hasConjunction := len(segments) > 1

	var authors []string
	for _, segment := range segments {
		parts := splitCommaParts(segment)
		if len(parts) == 0 {
			continue
		}

		// A lone "Last, First" byline keeps its comma; splitting it
		// would turn one person into two.
		if !hasConjunction && len(segments) == 1 && len(parts) == 2 {
			authors = append(authors, parts[0]+", "+parts[1])
			continue
		}

		current := parts[0]
		for _, part := range parts[1:] {
			if n.isSuffix(part) && current != "" {
				current = current + ", " + part
				continue
			}
			if current != "" {
				authors = append(authors, current)
			}
			current = part
		}
		if current != "" {
			authors = append(authors, current)
		}
	}

	out := make([]string, 0, len(authors))
	for _, author := range authors {
		name := strings.TrimSpace(n.attributionRe.ReplaceAllString(author, ""))
		if name == "" || strings.EqualFold(name, n.attribution) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// isSuffix reports whether a comma component is a generational suffix
// ("Jr.", "III", ...) that belongs to the preceding name.
func (n *AuthorNormalizer) isSuffix(part string) bool {
	normalized := strings.TrimRight(strings.ToLower(part), ".")
	return n.suffixes[normalized]
}

// splitCommaParts splits a byline segment on commas, trimming and
// dropping empty components.
func splitCommaParts(segment string) []string {
	raw := strings.Split(segment, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
