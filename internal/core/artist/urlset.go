// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"net/url"
	"strings"
)

// # URL Canonicalization

// NormalizeURL computes the canonical form of a URL used for deduplication
// and matching: scheme and host are lowercased, path and query are preserved
// verbatim. Unparsable values are returned as-is so that legacy rows survive
// round-trips untouched.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	return parsed.String()
}

// SearchKey reduces a normalized URL to the comparable form persisted in the
// store's search column: scheme stripped, leading "www." stripped, trailing
// slash stripped. All equality and prefix matching happens on this form, so
// http/https and www/non-www variants of the same location compare equal.
func SearchKey(normalizedURL string) string {
	key := normalizedURL

	if schemeEnd := strings.Index(key, "://"); schemeEnd >= 0 {
		key = key[schemeEnd+3:]
	}

	key = strings.TrimPrefix(key, "www.")

	return strings.TrimSuffix(key, "/")
}

// # URL Text Parsing

// ParseURLText converts a free-text URL submission (whitespace/newline
// separated tokens, each optionally prefixed with a single '-' to mark it
// inactive) into an ordered, deduplicated set of [ArtistURL] records.
//
// # Dedup Precedence
//
// When an active and an inactive form of the same normalized URL both appear,
// only the inactive form is kept: explicitly marking something gone wins over
// accidentally re-adding it.
func ParseURLText(raw string) []*ArtistURL {
	tokens := strings.Fields(raw)

	ordered := make([]*ArtistURL, 0, len(tokens))
	position := make(map[string]int, len(tokens))

	for _, token := range tokens {
		isActive := true
		if strings.HasPrefix(token, "-") {
			isActive = false
			token = token[1:]
		}

		if token == "" {
			continue
		}

		normalized := NormalizeURL(token)

		if existing, seen := position[normalized]; seen {
			// Inactive wins over a duplicate active form.
			if !isActive {
				ordered[existing].IsActive = false
			}
			continue
		}

		position[normalized] = len(ordered)
		ordered = append(ordered, &ArtistURL{
			URL:           token,
			NormalizedURL: normalized,
			IsActive:      isActive,
		})
	}

	return ordered
}

// RenderURLText is the inverse of [ParseURLText]: it renders a URL set back
// into signed-string text, one URL per line. Parsing the rendered text yields
// an equivalent set (normalization is idempotent).
func RenderURLText(urls []*ArtistURL) string {
	lines := make([]string, 0, len(urls))
	for _, u := range urls {
		lines = append(lines, u.Signed())
	}
	return strings.Join(lines, "\n")
}

// SignedURLStrings renders a URL set as a slice of signed strings, the
// representation stored inside version snapshots.
func SignedURLStrings(urls []*ArtistURL) []string {
	signed := make([]string, 0, len(urls))
	for _, u := range urls {
		signed = append(signed, u.Signed())
	}
	return signed
}

// # URL Set Diffing

// URLSetDiff describes how to move an artist's stored URL collection to a
// newly parsed one while disturbing as few rows as possible.
type URLSetDiff struct {
	// Unchanged rows keep their identity and need no write.
	Unchanged []*ArtistURL
	// Updated rows keep their identity but flip IsActive.
	Updated []*ArtistURL
	// Added rows are new normalized URLs to insert.
	Added []*ArtistURL
	// Removed rows are prior records absent from the new parse.
	Removed []*ArtistURL

	// result is the post-diff collection in parse order.
	result []*ArtistURL
}

// IsEmpty reports whether applying the diff would write nothing.
func (d URLSetDiff) IsEmpty() bool {
	return len(d.Updated) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// Result returns the full post-diff URL collection in parse order.
func (d URLSetDiff) Result() []*ArtistURL {
	return d.result
}

// DiffURLSet computes a [URLSetDiff] between an artist's existing URL rows
// and a freshly parsed set.
//
// Rows are matched by normalized URL: a match with the same active flag is
// untouched (identity preserved so unrelated references stay stable); a match
// with a flipped flag is updated in place rather than recreated, which is
// what keeps the record count at one when "-http://a.com" becomes
// "http://a.com" and back.
func DiffURLSet(existing, parsed []*ArtistURL) URLSetDiff {
	byNormalized := make(map[string]*ArtistURL, len(existing))
	for _, row := range existing {
		byNormalized[row.NormalizedURL] = row
	}

	diff := URLSetDiff{}
	matched := make(map[string]struct{}, len(parsed))

	for _, incoming := range parsed {
		row, found := byNormalized[incoming.NormalizedURL]
		if !found {
			diff.Added = append(diff.Added, incoming)
			diff.result = append(diff.result, incoming)
			continue
		}

		matched[incoming.NormalizedURL] = struct{}{}
		diff.result = append(diff.result, row)

		if row.IsActive == incoming.IsActive {
			diff.Unchanged = append(diff.Unchanged, row)
			continue
		}

		row.IsActive = incoming.IsActive
		diff.Updated = append(diff.Updated, row)
	}

	for _, row := range existing {
		if _, kept := matched[row.NormalizedURL]; !kept {
			diff.Removed = append(diff.Removed, row)
		}
	}

	return diff
}
