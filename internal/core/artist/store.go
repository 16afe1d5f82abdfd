// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import "context"

// Repository is the persistence contract for artists and their URL sets.
//
// FindActiveByNormalizedURL and FindActiveByURLPrefix operate on search keys
// (see [SearchKey]) and only ever return active artists; they are the query
// surface the finder engine builds on.
type Repository interface {
	ListArtists(ctx context.Context, f Filter, limit, offset int) ([]*Artist, int, error)
	GetArtist(ctx context.Context, id int) (*Artist, error)
	GetArtistByName(ctx context.Context, name string) (*Artist, error)
	CreateArtist(ctx context.Context, a *Artist) error
	UpdateArtist(ctx context.Context, a *Artist, diff URLSetDiff) error
	SetArtistActive(ctx context.Context, id int, isActive bool) error

	FindActiveByNormalizedURL(ctx context.Context, searchKey string) ([]*Artist, error)
	FindActiveByURLPrefix(ctx context.Context, searchKey string) ([]*Artist, error)
}

// VersionRepository is the persistence contract for the append-only version
// history. AmendLatestVersion rewrites the fields of the most recent version
// row in place; it is only ever invoked by the merge-window policy.
type VersionRepository interface {
	LatestVersion(ctx context.Context, artistID int) (*Version, error)
	ListVersions(ctx context.Context, artistID int, limit, offset int) ([]*Version, int, error)
	GetVersion(ctx context.Context, versionID int) (*Version, error)
	AppendVersion(ctx context.Context, v *Version) error
	AmendLatestVersion(ctx context.Context, v *Version) error
}
