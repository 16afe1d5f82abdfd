// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package artistname canonicalizes artist names and alias lists.
//
// # Usage
//
// Every artist name stored or compared by Artdex goes through [Normalize]
// first, so "AAA BBB", "aaa  bbb" and "aaa_bbb" all identify the same artist.
package artistname

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts an arbitrary Unicode string into a canonical artist name.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFKC (folds full-width forms and compatibility characters).
// 2. Trims surrounding whitespace.
// 3. Collapses internal whitespace runs into single underscores.
// 4. Converts to lowercase.
func Normalize(s string) string {
	// 1. Unicode compatibility fold
	result := norm.NFKC.String(s)

	// 2-3. Trim and collapse whitespace runs
	result = strings.Join(strings.Fields(result), "_")

	// 4. Lowercase
	return strings.ToLower(result)
}

// NormalizeOtherNames canonicalizes an alias list against a primary name.
//
// Each entry may contain several whitespace-separated aliases. Tokens equal
// to the normalized primary name are dropped, duplicates are dropped
// case-insensitively keeping the first occurrence, and the remaining input
// order is preserved.
func NormalizeOtherNames(primary string, names []string) []string {
	normalizedPrimary := Normalize(primary)

	seen := make(map[string]struct{})
	result := make([]string, 0, len(names))

	for _, entry := range names {
		for _, token := range strings.Fields(entry) {
			alias := Normalize(token)

			if alias == "" || alias == normalizedPrimary {
				continue
			}

			if _, duplicate := seen[alias]; duplicate {
				continue
			}

			seen[alias] = struct{}{}
			result = append(result, alias)
		}
	}

	return result
}
