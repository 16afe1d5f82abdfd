// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package artist tracks the creators of user-submitted media.

It owns the canonical [Artist] identity (normalized name, alias set, group
membership), the artist's [ArtistURL] collection used for source matching,
and the append-only [Version] history of every metadata change.

# Core Responsibility

  - Identity: Defines the [Artist] entity and its normalization rules.
  - URL Set: Parses free-text URL submissions into structured records.
  - History: Snapshots every meaningful save into an immutable [Version].

Resolution of arbitrary source URLs against this data lives in the finder
package; this package only maintains the records it queries.
*/
package artist

import "time"

// # Core Entities

// Artist represents a known creator of submitted artwork.
type Artist struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`        // normalized, unique
	OtherNames []string     `json:"other_names"` // normalized aliases, insertion order
	GroupName  *string      `json:"group_name,omitempty"`
	IsActive   bool         `json:"is_active"` // false = soft-deleted, excluded from resolution
	IsBanned   bool         `json:"is_banned"`
	URLs       []*ArtistURL `json:"urls"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ArtistURL is a single parsed URL owned by an artist.
//
// The literal URL is kept as submitted; NormalizedURL is the canonical form
// used for deduplication and matching (host lowercased, path/query verbatim).
type ArtistURL struct {
	ID            int       `json:"id"`
	ArtistID      int       `json:"artist_id"`
	URL           string    `json:"url"`
	NormalizedURL string    `json:"normalized_url"`
	IsActive      bool      `json:"is_active"` // false when the source text was '-'-prefixed
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Signed renders the URL in signed-string form: the literal URL, prefixed
// with '-' when inactive. This is the representation stored in version
// snapshots and accepted back by the URL text parser.
func (u *ArtistURL) Signed() string {
	if u.IsActive {
		return u.URL
	}
	return "-" + u.URL
}

// # Search & Filtering

// Filter holds the parameters for a paginated artist search.
type Filter struct {
	// Query matches against name, aliases, and stored URLs.
	Query string

	// IncludeInactive also returns soft-deleted artists (moderation views).
	IncludeInactive bool
}

// # Field Identifiers

const (
	FieldName       = "name"
	FieldOtherNames = "other_names"
	FieldGroupName  = "group_name"
	FieldURL        = "url"
	FieldURLText    = "url_text"
	FieldVersionID  = "version_id"
)
