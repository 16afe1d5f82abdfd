// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"time"

	"github.com/taibuivan/artdex/internal/platform/constants"
)

// # Version Snapshots

// Version is an immutable snapshot of an artist's diffable fields, captured
// on every save that changed something. Versions are append-only: they are
// never deleted, and a revert produces a new version rather than rewriting
// history.
type Version struct {
	ID         int       `json:"id"`
	ArtistID   int       `json:"artist_id"`
	Name       string    `json:"name"`
	OtherNames []string  `json:"other_names"`
	GroupName  *string   `json:"group_name,omitempty"`
	URLs       []string  `json:"urls"` // signed strings, '-' prefix for inactive
	IsBanned   bool      `json:"is_banned"`
	UpdaterID  string    `json:"updater_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"` // bumped when a merge amends in place
}

// SnapshotOf captures the diffable fields of an artist into a new [Version].
func SnapshotOf(subject *Artist, updaterID string, now time.Time) *Version {
	return &Version{
		ArtistID:   subject.ID,
		Name:       subject.Name,
		OtherNames: append([]string(nil), subject.OtherNames...),
		GroupName:  subject.GroupName,
		URLs:       SignedURLStrings(subject.URLs),
		IsBanned:   subject.IsBanned,
		UpdaterID:  updaterID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Differs reports whether any diffable field changed relative to prev.
// A nil prev (no history yet) always differs.
func (v *Version) Differs(prev *Version) bool {
	if prev == nil {
		return true
	}

	if v.Name != prev.Name || v.IsBanned != prev.IsBanned {
		return true
	}

	if !equalOptional(v.GroupName, prev.GroupName) {
		return true
	}

	return !equalStrings(v.OtherNames, prev.OtherNames) || !equalStrings(v.URLs, prev.URLs)
}

// # Merge Policy

// MergePolicy decides whether a new snapshot should amend the most recent
// version in place instead of appending a new one. It is a pure function of
// the previous version's metadata and the incoming save, kept injectable so
// tests can force strict per-save versioning.
type MergePolicy func(prev *Version, updaterID string, now time.Time) bool

// WindowMergePolicy merges consecutive edits by the same updater that land
// within the given window of the previous version's creation. This is the
// production default: it collapses one editing session into one version
// without ever merging across editors.
func WindowMergePolicy(window time.Duration) MergePolicy {
	if window <= 0 {
		window = constants.DefaultVersionMergeWindow
	}

	return func(prev *Version, updaterID string, now time.Time) bool {
		if prev == nil || prev.UpdaterID != updaterID {
			return false
		}
		elapsed := now.Sub(prev.CreatedAt)
		return elapsed >= 0 && elapsed < window
	}
}

// NeverMerge appends a version on every changed save. Used by tests and by
// audit-sensitive deployments that want one version per write.
func NeverMerge(*Version, string, time.Time) bool {
	return false
}

// # Comparison Helpers

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
