// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artdex/internal/core/artist"
)

/*
TestNormalizeURL verifies scheme/host lowercasing and path preservation.
*/
func TestNormalizeURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases scheme", "HTTP://example.com/a", "http://example.com/a"},
		{"lowercases host", "http://ExAmPlE.CoM/a", "http://example.com/a"},
		{"preserves path case", "http://example.com/Gallery/Art.JPG", "http://example.com/Gallery/Art.JPG"},
		{"preserves query", "http://example.com/p?ID=42&x=Y", "http://example.com/p?ID=42&x=Y"},
		{"unparsable returned as-is", "example com/no scheme", "example com/no scheme"},
		{"schemeless returned as-is", "example.com/a", "example.com/a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, artist.NormalizeURL(tc.input))
		})
	}
}

/*
TestSearchKey verifies the comparable-form reduction used by the store.
*/
func TestSearchKey(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips scheme", "http://example.com/a", "example.com/a"},
		{"strips https scheme", "https://example.com/a", "example.com/a"},
		{"strips www", "http://www.example.com/a", "example.com/a"},
		{"strips trailing slash", "http://example.com/a/", "example.com/a"},
		{"bare host", "http://example.com/", "example.com"},
		{"keeps non-www subdomain", "http://touch.pixiv.net/x", "touch.pixiv.net/x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, artist.SearchKey(tc.input))
		})
	}

	// http and https variants of one location must compare equal.
	assert.Equal(t,
		artist.SearchKey(artist.NormalizeURL("http://www.pixiv.net/users/1")),
		artist.SearchKey(artist.NormalizeURL("https://pixiv.net/users/1")),
	)
}

/*
TestParseURLText verifies token splitting, sign handling, and ordering.
*/
func TestParseURLText(t *testing.T) {
	t.Run("splits on any whitespace", func(t *testing.T) {
		urls := artist.ParseURLText("http://a.com\nhttp://b.com \t http://c.com")

		require.Len(t, urls, 3)
		assert.Equal(t, "http://a.com", urls[0].URL)
		assert.Equal(t, "http://b.com", urls[1].URL)
		assert.Equal(t, "http://c.com", urls[2].URL)
	})

	t.Run("dash prefix marks inactive", func(t *testing.T) {
		urls := artist.ParseURLText("-http://gone.com http://here.com")

		require.Len(t, urls, 2)
		assert.False(t, urls[0].IsActive)
		assert.Equal(t, "http://gone.com", urls[0].URL)
		assert.True(t, urls[1].IsActive)
	})

	t.Run("deduplicates by normalized form", func(t *testing.T) {
		urls := artist.ParseURLText("http://A.com/x http://a.com/x")

		require.Len(t, urls, 1)
		assert.Equal(t, "http://A.com/x", urls[0].URL) // first literal wins
		assert.Equal(t, "http://a.com/x", urls[0].NormalizedURL)
	})

	t.Run("inactive wins over duplicate active", func(t *testing.T) {
		// Both orders: the explicit removal marker is kept either way.
		first := artist.ParseURLText("-http://a.com http://a.com")
		require.Len(t, first, 1)
		assert.False(t, first[0].IsActive)

		second := artist.ParseURLText("http://a.com -http://a.com")
		require.Len(t, second, 1)
		assert.False(t, second[0].IsActive)
	})

	t.Run("empty text yields empty set", func(t *testing.T) {
		assert.Empty(t, artist.ParseURLText("   \n\t  "))
	})
}

/*
TestRenderURLText_RoundTrip verifies that render-then-parse is stable.
*/
func TestRenderURLText_RoundTrip(t *testing.T) {
	original := artist.ParseURLText("http://a.com -http://b.com/x http://c.com/y")

	rendered := artist.RenderURLText(original)
	assert.Equal(t, "http://a.com\n-http://b.com/x\nhttp://c.com/y", rendered)

	reparsed := artist.ParseURLText(rendered)
	require.Len(t, reparsed, len(original))
	for i := range original {
		assert.Equal(t, original[i].URL, reparsed[i].URL)
		assert.Equal(t, original[i].IsActive, reparsed[i].IsActive)
	}
}

/*
TestDiffURLSet verifies identity preservation across resubmissions.
*/
func TestDiffURLSet(t *testing.T) {
	existing := func() []*artist.ArtistURL {
		return []*artist.ArtistURL{
			{ID: 1, URL: "http://a.com", NormalizedURL: "http://a.com", IsActive: true},
			{ID: 2, URL: "http://b.com", NormalizedURL: "http://b.com", IsActive: true},
		}
	}

	t.Run("identical submission writes nothing", func(t *testing.T) {
		diff := artist.DiffURLSet(existing(), artist.ParseURLText("http://a.com http://b.com"))

		assert.True(t, diff.IsEmpty())
		assert.Len(t, diff.Unchanged, 2)
		require.Len(t, diff.Result(), 2)
		assert.Equal(t, 1, diff.Result()[0].ID)
	})

	t.Run("flipping the sign updates the row in place", func(t *testing.T) {
		diff := artist.DiffURLSet(existing(), artist.ParseURLText("-http://a.com http://b.com"))

		require.Len(t, diff.Updated, 1)
		assert.Equal(t, 1, diff.Updated[0].ID) // same row, not a new one
		assert.False(t, diff.Updated[0].IsActive)
		assert.Empty(t, diff.Added)
		assert.Empty(t, diff.Removed)

		// 2. Flip back: still the same single row.
		back := artist.DiffURLSet(diff.Result(), artist.ParseURLText("http://a.com http://b.com"))
		require.Len(t, back.Updated, 1)
		assert.Equal(t, 1, back.Updated[0].ID)
		assert.True(t, back.Updated[0].IsActive)
		assert.Len(t, back.Result(), 2)
	})

	t.Run("new URLs are added, missing ones removed", func(t *testing.T) {
		diff := artist.DiffURLSet(existing(), artist.ParseURLText("http://a.com http://c.com"))

		require.Len(t, diff.Added, 1)
		assert.Equal(t, "http://c.com", diff.Added[0].URL)
		require.Len(t, diff.Removed, 1)
		assert.Equal(t, 2, diff.Removed[0].ID)
	})

	t.Run("result follows parse order", func(t *testing.T) {
		diff := artist.DiffURLSet(existing(), artist.ParseURLText("http://c.com http://b.com http://a.com"))

		result := diff.Result()
		require.Len(t, result, 3)
		assert.Equal(t, "http://c.com", result[0].URL)
		assert.Equal(t, 2, result[1].ID)
		assert.Equal(t, 1, result[2].ID)
	})
}
