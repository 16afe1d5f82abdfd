// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/artdex/internal/core/artist"
)

func strPtr(s string) *string { return &s }

/*
TestVersion_Differs verifies change detection across every diffable field.
*/
func TestVersion_Differs(t *testing.T) {
	base := func() *artist.Version {
		return &artist.Version{
			Name:       "bkub",
			OtherNames: []string{"bkub_comic"},
			GroupName:  strPtr("circle"),
			URLs:       []string{"http://a.com", "-http://b.com"},
			IsBanned:   false,
		}
	}

	t.Run("nil previous always differs", func(t *testing.T) {
		assert.True(t, base().Differs(nil))
	})

	t.Run("identical snapshot does not differ", func(t *testing.T) {
		assert.False(t, base().Differs(base()))
	})

	t.Run("each field is significant", func(t *testing.T) {
		byName := base()
		byName.Name = "someone_else"
		assert.True(t, byName.Differs(base()))

		byAlias := base()
		byAlias.OtherNames = []string{"bkub_comic", "extra"}
		assert.True(t, byAlias.Differs(base()))

		byGroup := base()
		byGroup.GroupName = nil
		assert.True(t, byGroup.Differs(base()))

		byURL := base()
		byURL.URLs = []string{"http://a.com", "http://b.com"} // sign flip counts
		assert.True(t, byURL.Differs(base()))

		byBan := base()
		byBan.IsBanned = true
		assert.True(t, byBan.Differs(base()))
	})
}

/*
TestWindowMergePolicy verifies the merge window boundary conditions.
*/
func TestWindowMergePolicy(t *testing.T) {
	policy := artist.WindowMergePolicy(1 * time.Hour)
	anchor := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	prev := &artist.Version{UpdaterID: "editor-1", CreatedAt: anchor}

	testCases := []struct {
		name      string
		updaterID string
		now       time.Time
		expected  bool
	}{
		{"same updater inside window", "editor-1", anchor.Add(30 * time.Minute), true},
		{"same updater at window edge", "editor-1", anchor.Add(1 * time.Hour), false},
		{"same updater past window", "editor-1", anchor.Add(2 * time.Hour), false},
		{"different updater inside window", "editor-2", anchor.Add(1 * time.Minute), false},
		{"same instant merges", "editor-1", anchor, true},
		{"clock skew before anchor never merges", "editor-1", anchor.Add(-1 * time.Minute), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, policy(prev, tc.updaterID, tc.now))
		})
	}

	t.Run("nil previous never merges", func(t *testing.T) {
		assert.False(t, policy(nil, "editor-1", anchor))
	})
}

/*
TestSnapshotOf verifies that snapshots capture signed URL strings.
*/
func TestSnapshotOf(t *testing.T) {
	subject := &artist.Artist{
		ID:   7,
		Name: "bkub",
		URLs: []*artist.ArtistURL{
			{URL: "http://a.com", IsActive: true},
			{URL: "http://b.com", IsActive: false},
		},
	}

	snapshot := artist.SnapshotOf(subject, "editor-1", time.Now())

	assert.Equal(t, 7, snapshot.ArtistID)
	assert.Equal(t, "editor-1", snapshot.UpdaterID)
	assert.Equal(t, []string{"http://a.com", "-http://b.com"}, snapshot.URLs)
}
