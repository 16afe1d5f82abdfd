// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artdex/internal/core/artist"
	"github.com/taibuivan/artdex/internal/platform/apperr"
)

// # In-Memory Fakes

type memoryRepository struct {
	artists   map[int]*artist.Artist
	nextID    int
	nextURLID int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{artists: map[int]*artist.Artist{}, nextID: 1, nextURLID: 1}
}

func (r *memoryRepository) ListArtists(_ context.Context, f artist.Filter, limit, offset int) ([]*artist.Artist, int, error) {
	var all []*artist.Artist
	for _, a := range r.artists {
		if !f.IncludeInactive && !a.IsActive {
			continue
		}
		all = append(all, a)
	}
	return all, len(all), nil
}

func (r *memoryRepository) GetArtist(_ context.Context, id int) (*artist.Artist, error) {
	a, ok := r.artists[id]
	if !ok {
		return nil, apperr.NotFound("Artist")
	}
	return a, nil
}

func (r *memoryRepository) GetArtistByName(_ context.Context, name string) (*artist.Artist, error) {
	for _, a := range r.artists {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, apperr.NotFound("Artist")
}

func (r *memoryRepository) CreateArtist(_ context.Context, a *artist.Artist) error {
	a.ID = r.nextID
	r.nextID++
	for _, u := range a.URLs {
		u.ID = r.nextURLID
		u.ArtistID = a.ID
		r.nextURLID++
	}
	r.artists[a.ID] = a
	return nil
}

func (r *memoryRepository) UpdateArtist(_ context.Context, a *artist.Artist, diff artist.URLSetDiff) error {
	if _, ok := r.artists[a.ID]; !ok {
		return apperr.NotFound("Artist")
	}
	for _, u := range diff.Added {
		u.ID = r.nextURLID
		u.ArtistID = a.ID
		r.nextURLID++
	}
	r.artists[a.ID] = a
	return nil
}

func (r *memoryRepository) SetArtistActive(_ context.Context, id int, isActive bool) error {
	a, ok := r.artists[id]
	if !ok {
		return apperr.NotFound("Artist")
	}
	a.IsActive = isActive
	return nil
}

func (r *memoryRepository) FindActiveByNormalizedURL(_ context.Context, searchKey string) ([]*artist.Artist, error) {
	return r.find(func(key string) bool { return key == searchKey })
}

func (r *memoryRepository) FindActiveByURLPrefix(_ context.Context, searchKey string) ([]*artist.Artist, error) {
	return r.find(func(key string) bool {
		return key == searchKey || strings.HasPrefix(key, searchKey+"/")
	})
}

func (r *memoryRepository) find(match func(string) bool) ([]*artist.Artist, error) {
	var found []*artist.Artist
	for _, a := range r.artists {
		if !a.IsActive {
			continue
		}
		for _, u := range a.URLs {
			if u.IsActive && match(artist.SearchKey(u.NormalizedURL)) {
				found = append(found, a)
				break
			}
		}
	}
	return found, nil
}

type memoryVersionRepository struct {
	versions []*artist.Version
	nextID   int
}

func newMemoryVersionRepository() *memoryVersionRepository {
	return &memoryVersionRepository{nextID: 1}
}

func (r *memoryVersionRepository) LatestVersion(_ context.Context, artistID int) (*artist.Version, error) {
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].ArtistID == artistID {
			return r.versions[i], nil
		}
	}
	return nil, nil
}

func (r *memoryVersionRepository) ListVersions(_ context.Context, artistID int, limit, offset int) ([]*artist.Version, int, error) {
	var matching []*artist.Version
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].ArtistID == artistID {
			matching = append(matching, r.versions[i])
		}
	}
	return matching, len(matching), nil
}

func (r *memoryVersionRepository) GetVersion(_ context.Context, versionID int) (*artist.Version, error) {
	for _, v := range r.versions {
		if v.ID == versionID {
			return v, nil
		}
	}
	return nil, apperr.NotFound("Version")
}

func (r *memoryVersionRepository) AppendVersion(_ context.Context, v *artist.Version) error {
	v.ID = r.nextID
	r.nextID++
	r.versions = append(r.versions, v)
	return nil
}

func (r *memoryVersionRepository) AmendLatestVersion(_ context.Context, v *artist.Version) error {
	for i, existing := range r.versions {
		if existing.ID == v.ID {
			r.versions[i] = v
			return nil
		}
	}
	return apperr.NotFound("Version")
}

func (r *memoryVersionRepository) countFor(artistID int) int {
	count := 0
	for _, v := range r.versions {
		if v.ArtistID == artistID {
			count++
		}
	}
	return count
}

func newTestService(merge artist.MergePolicy) (*artist.Service, *memoryRepository, *memoryVersionRepository) {
	repo := newMemoryRepository()
	versions := newMemoryVersionRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return artist.NewService(repo, versions, merge, logger), repo, versions
}

// # Service Tests

/*
TestService_CreateArtist verifies normalization, URL parsing, and the
initial version snapshot.
*/
func TestService_CreateArtist(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{
		Name:       "BKUB Comic",
		OtherNames: []string{"bkub", "bkub_comic"},
		GroupName:  "Pop Team",
		URLText:    "http://bkub.com -http://old.bkub.com",
	}, "editor-1")
	require.NoError(t, err)

	// 1. Name and aliases are normalized; the primary name is dropped from aliases.
	assert.Equal(t, "bkub_comic", created.Name)
	assert.Equal(t, []string{"bkub"}, created.OtherNames)
	require.NotNil(t, created.GroupName)
	assert.Equal(t, "pop_team", *created.GroupName)

	// 2. URLs are parsed with their signs.
	require.Len(t, created.URLs, 2)
	assert.True(t, created.URLs[0].IsActive)
	assert.False(t, created.URLs[1].IsActive)

	// 3. Exactly one version exists.
	assert.Equal(t, 1, versions.countFor(created.ID))
	latest, _ := versions.LatestVersion(ctx, created.ID)
	assert.Equal(t, "editor-1", latest.UpdaterID)
	assert.Equal(t, []string{"http://bkub.com", "-http://old.bkub.com"}, latest.URLs)
}

/*
TestService_CreateArtist_Validation verifies rejected submissions.
*/
func TestService_CreateArtist_Validation(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input artist.SaveInput
	}{
		{"empty name", artist.SaveInput{Name: "   "}},
		{"underscores only", artist.SaveInput{Name: "___"}},
		{"url without scheme", artist.SaveInput{Name: "ok_name", URLText: "bkub.com/gallery"}},
		{"ftp scheme", artist.SaveInput{Name: "ok_name", URLText: "ftp://bkub.com"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateArtist(ctx, tc.input, "editor-1")
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
		})
	}

	// A failed save records nothing.
	assert.Empty(t, versions.versions)
}

/*
TestService_UpdateArtist_NoOp verifies that an identical resubmission
records no new version even under a strict merge policy.
*/
func TestService_UpdateArtist_NoOp(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, "editor-1")
	require.NoError(t, err)

	_, err = service.UpdateArtist(ctx, created.ID, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, artist.SaveOptions{}, "editor-2")
	require.NoError(t, err)

	assert.Equal(t, 1, versions.countFor(created.ID))
}

/*
TestService_UpdateArtist_SignFlip verifies row identity across removals
and re-additions of the same URL.
*/
func TestService_UpdateArtist_SignFlip(t *testing.T) {
	service, _, _ := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, "editor-1")
	require.NoError(t, err)

	originalURLID := created.URLs[0].ID

	// 1. Mark the URL removed.
	updated, err := service.UpdateArtist(ctx, created.ID, artist.SaveInput{
		Name:    "bkub",
		URLText: "-http://bkub.com",
	}, artist.SaveOptions{}, "editor-1")
	require.NoError(t, err)
	require.Len(t, updated.URLs, 1)
	assert.Equal(t, originalURLID, updated.URLs[0].ID)
	assert.False(t, updated.URLs[0].IsActive)

	// 2. Re-add it: same row flips back, count stays at one.
	restored, err := service.UpdateArtist(ctx, created.ID, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, artist.SaveOptions{}, "editor-1")
	require.NoError(t, err)
	require.Len(t, restored.URLs, 1)
	assert.Equal(t, originalURLID, restored.URLs[0].ID)
	assert.True(t, restored.URLs[0].IsActive)
}

/*
TestService_VersionMerging verifies window-based collapsing of rapid edits.
*/
func TestService_VersionMerging(t *testing.T) {
	t.Run("same editor within window amends in place", func(t *testing.T) {
		service, _, versions := newTestService(artist.WindowMergePolicy(1 * time.Hour))
		ctx := context.Background()

		created, err := service.CreateArtist(ctx, artist.SaveInput{Name: "bkub"}, "editor-1")
		require.NoError(t, err)

		_, err = service.UpdateArtist(ctx, created.ID, artist.SaveInput{
			Name:    "bkub",
			URLText: "http://bkub.com",
		}, artist.SaveOptions{}, "editor-1")
		require.NoError(t, err)

		require.Equal(t, 1, versions.countFor(created.ID))
		latest, _ := versions.LatestVersion(ctx, created.ID)
		assert.Equal(t, []string{"http://bkub.com"}, latest.URLs)
	})

	t.Run("different editor always appends", func(t *testing.T) {
		service, _, versions := newTestService(artist.WindowMergePolicy(1 * time.Hour))
		ctx := context.Background()

		created, err := service.CreateArtist(ctx, artist.SaveInput{Name: "bkub"}, "editor-1")
		require.NoError(t, err)

		_, err = service.UpdateArtist(ctx, created.ID, artist.SaveInput{
			Name:    "bkub",
			URLText: "http://bkub.com",
		}, artist.SaveOptions{}, "editor-2")
		require.NoError(t, err)

		assert.Equal(t, 2, versions.countFor(created.ID))
	})

	t.Run("strict policy appends every change", func(t *testing.T) {
		service, _, versions := newTestService(artist.NeverMerge)
		ctx := context.Background()

		created, err := service.CreateArtist(ctx, artist.SaveInput{Name: "bkub"}, "editor-1")
		require.NoError(t, err)

		_, err = service.UpdateArtist(ctx, created.ID, artist.SaveInput{
			Name:    "bkub",
			URLText: "http://bkub.com",
		}, artist.SaveOptions{}, "editor-1")
		require.NoError(t, err)

		assert.Equal(t, 2, versions.countFor(created.ID))
	})
}

/*
TestService_RevertArtist verifies restoration from a prior snapshot.
*/
func TestService_RevertArtist(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, "editor-1")
	require.NoError(t, err)

	firstVersion, _ := versions.LatestVersion(ctx, created.ID)

	_, err = service.UpdateArtist(ctx, created.ID, artist.SaveInput{
		Name:    "vandalized_name",
		URLText: "http://spam.example.com",
	}, artist.SaveOptions{}, "editor-2")
	require.NoError(t, err)

	// 1. Revert restores the original fields.
	reverted, err := service.RevertArtist(ctx, created.ID, firstVersion.ID, "editor-3")
	require.NoError(t, err)
	assert.Equal(t, "bkub", reverted.Name)
	require.Len(t, reverted.URLs, 1)
	assert.Equal(t, "http://bkub.com", reverted.URLs[0].URL)

	// 2. History is append-only: create, vandalism, revert.
	assert.Equal(t, 3, versions.countFor(created.ID))
	latest, _ := versions.LatestVersion(ctx, created.ID)
	assert.Equal(t, "editor-3", latest.UpdaterID)
}

/*
TestService_RevertArtist_BanFlag verifies that a revert across a ban-flag
difference restores the flag in the same single version as the other fields.
*/
func TestService_RevertArtist_BanFlag(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, "editor-1")
	require.NoError(t, err)

	firstVersion, _ := versions.LatestVersion(ctx, created.ID)

	_, err = service.BanArtist(ctx, created.ID, "mod-1")
	require.NoError(t, err)

	_, err = service.UpdateArtist(ctx, created.ID, artist.SaveInput{
		Name:    "renamed",
		URLText: "http://bkub.com",
	}, artist.SaveOptions{}, "editor-2")
	require.NoError(t, err)
	require.Equal(t, 3, versions.countFor(created.ID))

	// 1. The revert lands the unbanned state with the restored fields.
	reverted, err := service.RevertArtist(ctx, created.ID, firstVersion.ID, "editor-3")
	require.NoError(t, err)
	assert.Equal(t, "bkub", reverted.Name)
	assert.False(t, reverted.IsBanned)

	// 2. Exactly one version, even under the strict policy, and its snapshot
	// matches the target.
	assert.Equal(t, 4, versions.countFor(created.ID))
	latest, _ := versions.LatestVersion(ctx, created.ID)
	assert.False(t, latest.IsBanned)
	assert.Equal(t, "bkub", latest.Name)
	assert.Equal(t, "editor-3", latest.UpdaterID)
}

/*
TestService_RevertArtist_WrongArtist verifies cross-artist reverts are refused.
*/
func TestService_RevertArtist_WrongArtist(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	first, err := service.CreateArtist(ctx, artist.SaveInput{Name: "first"}, "editor-1")
	require.NoError(t, err)
	second, err := service.CreateArtist(ctx, artist.SaveInput{Name: "second"}, "editor-1")
	require.NoError(t, err)

	firstVersion, _ := versions.LatestVersion(ctx, first.ID)

	_, err = service.RevertArtist(ctx, second.ID, firstVersion.ID, "editor-1")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 422, appError.HTTPStatus)
}

/*
TestService_RevertArtist_LegacyURLs verifies that snapshots containing
scheme-less URLs from old data can still be restored.
*/
func TestService_RevertArtist_LegacyURLs(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{Name: "bkub"}, "editor-1")
	require.NoError(t, err)

	// Simulate a legacy snapshot recorded before scheme validation existed.
	legacy := &artist.Version{
		ArtistID:  created.ID,
		Name:      "bkub",
		URLs:      []string{"bkub.com/gallery"},
		UpdaterID: "editor-0",
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, versions.AppendVersion(ctx, legacy))

	reverted, err := service.RevertArtist(ctx, created.ID, legacy.ID, "editor-1")
	require.NoError(t, err)
	require.Len(t, reverted.URLs, 1)
	assert.Equal(t, "bkub.com/gallery", reverted.URLs[0].URL)
}

/*
TestService_DeleteUndelete verifies soft deletion semantics.
*/
func TestService_DeleteUndelete(t *testing.T) {
	service, repo, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{
		Name:    "bkub",
		URLText: "http://bkub.com",
	}, "editor-1")
	require.NoError(t, err)

	require.NoError(t, service.DeleteArtist(ctx, created.ID))

	// 1. Record survives but leaves resolution.
	stored, err := service.GetArtist(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Len(t, stored.URLs, 1)

	found, err := repo.FindActiveByNormalizedURL(ctx, "bkub.com")
	require.NoError(t, err)
	assert.Empty(t, found)

	// 2. Activity changes are not versioned.
	assert.Equal(t, 1, versions.countFor(created.ID))

	// 3. Undelete restores resolution.
	require.NoError(t, service.UndeleteArtist(ctx, created.ID))
	found, err = repo.FindActiveByNormalizedURL(ctx, "bkub.com")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

/*
TestService_BanUnban verifies the banned flag is versioned.
*/
func TestService_BanUnban(t *testing.T) {
	service, _, versions := newTestService(artist.NeverMerge)
	ctx := context.Background()

	created, err := service.CreateArtist(ctx, artist.SaveInput{Name: "bkub"}, "editor-1")
	require.NoError(t, err)

	banned, err := service.BanArtist(ctx, created.ID, "mod-1")
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.Equal(t, 2, versions.countFor(created.ID))

	// Banning an already banned artist is a no-op.
	_, err = service.BanArtist(ctx, created.ID, "mod-2")
	require.NoError(t, err)
	assert.Equal(t, 2, versions.countFor(created.ID))

	unbanned, err := service.UnbanArtist(ctx, created.ID, "mod-1")
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)
	assert.Equal(t, 3, versions.countFor(created.ID))
}
