// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/artdex/internal/platform/apperr"
	"github.com/taibuivan/artdex/internal/platform/constants"
	"github.com/taibuivan/artdex/internal/platform/validate"
	"github.com/taibuivan/artdex/pkg/artistname"
)

// Service implements the artist save pipeline: normalization, validation,
// URL set diffing, persistence, and version snapshotting.
type Service struct {
	repo     Repository
	versions VersionRepository
	merge    MergePolicy
	logger   *slog.Logger
}

// NewService constructs a new artist [Service].
//
// A nil merge policy falls back to [WindowMergePolicy] with the default
// merge window.
func NewService(repo Repository, versions VersionRepository, merge MergePolicy, logger *slog.Logger) *Service {
	if merge == nil {
		merge = WindowMergePolicy(constants.DefaultVersionMergeWindow)
	}

	return &Service{
		repo:     repo,
		versions: versions,
		merge:    merge,
		logger:   logger,
	}
}

// # Save Inputs

// SaveInput carries the mutable artist fields of a create or update request.
// Name/aliases arrive raw and are normalized here; URLText is the free-text
// signed URL list.
type SaveInput struct {
	Name       string
	OtherNames []string
	GroupName  string
	URLText    string
}

// SaveOptions tunes a single save operation.
type SaveOptions struct {
	// SkipValidation bypasses URL scheme validation. Reserved for data-repair
	// tooling and for reverts, whose snapshots may contain legacy scheme-less
	// entries; normal request flows never set it.
	SkipValidation bool

	// Banned, when non-nil, reassigns the banned flag within the same save so
	// the whole change lands in one version. Reverts use this; the HTTP update
	// path never sets it (moderation has its own endpoints).
	Banned *bool
}

// # Read Operations

func (service *Service) ListArtists(ctx context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	return service.repo.ListArtists(ctx, filter, limit, offset)
}

func (service *Service) GetArtist(ctx context.Context, id int) (*Artist, error) {
	return service.repo.GetArtist(ctx, id)
}

func (service *Service) ListVersions(ctx context.Context, artistID int, limit, offset int) ([]*Version, int, error) {
	// Ensure the artist exists so an unknown id is a 404, not an empty page.
	if _, err := service.repo.GetArtist(ctx, artistID); err != nil {
		return nil, 0, err
	}
	return service.versions.ListVersions(ctx, artistID, limit, offset)
}

// # Write Operations

// CreateArtist registers a new artist and records its first version.
func (service *Service) CreateArtist(ctx context.Context, input SaveInput, updaterID string) (*Artist, error) {
	name := artistname.Normalize(input.Name)
	urls := ParseURLText(input.URLText)

	if err := validateSave(name, urls, SaveOptions{}); err != nil {
		return nil, err
	}

	subject := &Artist{
		Name:       name,
		OtherNames: artistname.NormalizeOtherNames(name, input.OtherNames),
		GroupName:  normalizeGroupName(input.GroupName),
		IsActive:   true,
		URLs:       urls,
	}

	if err := service.repo.CreateArtist(ctx, subject); err != nil {
		return nil, err
	}

	if err := service.recordVersion(ctx, subject, updaterID); err != nil {
		return nil, err
	}

	service.logger.Info("artist_created",
		slog.Int("artist_id", subject.ID),
		slog.String("name", subject.Name),
	)
	return subject, nil
}

// UpdateArtist reassigns an artist's mutable fields, replacing the URL
// collection by diff so untouched rows keep their identity, then records a
// version if anything changed.
func (service *Service) UpdateArtist(ctx context.Context, id int, input SaveInput, opts SaveOptions, updaterID string) (*Artist, error) {
	subject, err := service.repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	name := artistname.Normalize(input.Name)
	parsed := ParseURLText(input.URLText)

	if err := validateSave(name, parsed, opts); err != nil {
		return nil, err
	}

	diff := DiffURLSet(subject.URLs, parsed)

	subject.Name = name
	subject.OtherNames = artistname.NormalizeOtherNames(name, input.OtherNames)
	subject.GroupName = normalizeGroupName(input.GroupName)
	if opts.Banned != nil {
		subject.IsBanned = *opts.Banned
	}

	if err := service.repo.UpdateArtist(ctx, subject, diff); err != nil {
		return nil, err
	}
	subject.URLs = diff.Result()

	if err := service.recordVersion(ctx, subject, updaterID); err != nil {
		return nil, err
	}

	service.logger.Info("artist_updated", slog.Int("artist_id", subject.ID))
	return subject, nil
}

// DeleteArtist soft-deletes an artist. URLs and history are retained; the
// artist is simply excluded from resolution until undeleted.
func (service *Service) DeleteArtist(ctx context.Context, id int) error {
	if err := service.repo.SetArtistActive(ctx, id, false); err != nil {
		return err
	}

	service.logger.Warn("artist_deleted", slog.Int("artist_id", id))
	return nil
}

// UndeleteArtist reactivates a soft-deleted artist.
func (service *Service) UndeleteArtist(ctx context.Context, id int) error {
	if err := service.repo.SetArtistActive(ctx, id, true); err != nil {
		return err
	}

	service.logger.Info("artist_undeleted", slog.Int("artist_id", id))
	return nil
}

// BanArtist flags an artist as banned. Tagging side effects are handled by
// the moderation pipeline, not here; the flag itself is versioned.
func (service *Service) BanArtist(ctx context.Context, id int, updaterID string) (*Artist, error) {
	return service.setBanned(ctx, id, true, updaterID)
}

// UnbanArtist clears the banned flag.
func (service *Service) UnbanArtist(ctx context.Context, id int, updaterID string) (*Artist, error) {
	return service.setBanned(ctx, id, false, updaterID)
}

func (service *Service) setBanned(ctx context.Context, id int, banned bool, updaterID string) (*Artist, error) {
	subject, err := service.repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	if subject.IsBanned == banned {
		return subject, nil
	}

	subject.IsBanned = banned

	// No URL changes: pass an empty diff that preserves the current rows.
	diff := DiffURLSet(subject.URLs, subject.URLs)
	if err := service.repo.UpdateArtist(ctx, subject, diff); err != nil {
		return nil, err
	}

	if err := service.recordVersion(ctx, subject, updaterID); err != nil {
		return nil, err
	}

	service.logger.Warn("artist_ban_changed",
		slog.Int("artist_id", id),
		slog.Bool("is_banned", banned),
	)
	return subject, nil
}

// RevertArtist restores an artist's diffable fields from a prior version and
// performs a normal save. History stays append-only: the revert itself shows
// up as a fresh version.
func (service *Service) RevertArtist(ctx context.Context, artistID, versionID int, updaterID string) (*Artist, error) {
	target, err := service.versions.GetVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}

	if target.ArtistID != artistID {
		return nil, apperr.Unprocessable("Version belongs to a different artist")
	}

	input := SaveInput{
		Name:       target.Name,
		OtherNames: target.OtherNames,
		URLText:    strings.Join(target.URLs, "\n"),
	}
	if target.GroupName != nil {
		input.GroupName = *target.GroupName
	}

	opts := SaveOptions{SkipValidation: true, Banned: &target.IsBanned}
	subject, err := service.UpdateArtist(ctx, artistID, input, opts, updaterID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("artist_reverted",
		slog.Int("artist_id", artistID),
		slog.Int("version_id", versionID),
	)
	return subject, nil
}

// # Version Recording

// recordVersion is the explicit snapshot hook invoked after every mutation.
// It appends, amends, or skips according to the diff and the merge policy.
func (service *Service) recordVersion(ctx context.Context, subject *Artist, updaterID string) error {
	now := time.Now().UTC()
	snapshot := SnapshotOf(subject, updaterID, now)

	latest, err := service.versions.LatestVersion(ctx, subject.ID)
	if err != nil {
		return err
	}

	// Idempotent saves are free: nothing changed, nothing recorded.
	if latest != nil && !snapshot.Differs(latest) {
		return nil
	}

	if latest != nil && service.merge(latest, updaterID, now) {
		snapshot.ID = latest.ID
		snapshot.CreatedAt = latest.CreatedAt
		if err := service.versions.AmendLatestVersion(ctx, snapshot); err != nil {
			return err
		}
		service.logger.Debug("artist_version_merged",
			slog.Int("artist_id", subject.ID),
			slog.Int("version_id", latest.ID),
		)
		return nil
	}

	return service.versions.AppendVersion(ctx, snapshot)
}

// # Validation

// validateSave enforces the name grammar and the URL scheme rule. All field
// failures are accumulated so a submission with several bad URLs reports all
// of them at once; any failure blocks the whole save.
func validateSave(name string, urls []*ArtistURL, opts SaveOptions) error {
	v := &validate.Validator{}
	v.ArtistName(FieldName, name).MaxLen(FieldName, name, 200)

	if !opts.SkipValidation {
		for _, u := range urls {
			v.HTTPURL(FieldURL, u.URL)
		}
	}

	return v.Err()
}

func normalizeGroupName(raw string) *string {
	group := artistname.Normalize(raw)
	if group == "" {
		return nil
	}
	return &group
}
