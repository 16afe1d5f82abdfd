package artist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/artdex/internal/platform/database/schema"
	"github.com/taibuivan/artdex/internal/platform/dberr"
)

type PostgresVersionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresVersionRepository(db *pgxpool.Pool) *PostgresVersionRepository {
	return &PostgresVersionRepository{db: db}
}

// LatestVersion returns the most recent version of an artist, or nil when no
// history exists yet.
func (repository *PostgresVersionRepository) LatestVersion(context context.Context, artistID int) (*Version, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT 1
	`,
		schema.RefArtistVersion.ID, schema.RefArtistVersion.ArtistID, schema.RefArtistVersion.Name,
		schema.RefArtistVersion.OtherNames, schema.RefArtistVersion.GroupName, schema.RefArtistVersion.URLs,
		schema.RefArtistVersion.IsBanned, schema.RefArtistVersion.UpdaterID,
		schema.RefArtistVersion.CreatedAt, schema.RefArtistVersion.UpdatedAt,
		schema.RefArtistVersion.Table, schema.RefArtistVersion.ArtistID, schema.RefArtistVersion.ID,
	)

	v := &Version{}
	err := repository.db.QueryRow(context, query, artistID).Scan(
		&v.ID, &v.ArtistID, &v.Name, &v.OtherNames, &v.GroupName, &v.URLs,
		&v.IsBanned, &v.UpdaterID, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "latest_artist_version")
	}
	return v, nil
}

func (repository *PostgresVersionRepository) ListVersions(context context.Context, artistID int, limit, offset int) ([]*Version, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefArtistVersion.Table, schema.RefArtistVersion.ArtistID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, artistID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_artist_versions")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.RefArtistVersion.ID, schema.RefArtistVersion.ArtistID, schema.RefArtistVersion.Name,
		schema.RefArtistVersion.OtherNames, schema.RefArtistVersion.GroupName, schema.RefArtistVersion.URLs,
		schema.RefArtistVersion.IsBanned, schema.RefArtistVersion.UpdaterID,
		schema.RefArtistVersion.CreatedAt, schema.RefArtistVersion.UpdatedAt,
		schema.RefArtistVersion.Table, schema.RefArtistVersion.ArtistID, schema.RefArtistVersion.ID,
	)

	rows, err := repository.db.Query(context, query, artistID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_artist_versions")
	}
	defer rows.Close()

	var versions []*Version
	for rows.Next() {
		v := &Version{}
		err := rows.Scan(
			&v.ID, &v.ArtistID, &v.Name, &v.OtherNames, &v.GroupName, &v.URLs,
			&v.IsBanned, &v.UpdaterID, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist_version")
		}
		versions = append(versions, v)
	}

	return versions, total, nil
}

func (repository *PostgresVersionRepository) GetVersion(context context.Context, versionID int) (*Version, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefArtistVersion.ID, schema.RefArtistVersion.ArtistID, schema.RefArtistVersion.Name,
		schema.RefArtistVersion.OtherNames, schema.RefArtistVersion.GroupName, schema.RefArtistVersion.URLs,
		schema.RefArtistVersion.IsBanned, schema.RefArtistVersion.UpdaterID,
		schema.RefArtistVersion.CreatedAt, schema.RefArtistVersion.UpdatedAt,
		schema.RefArtistVersion.Table, schema.RefArtistVersion.ID,
	)

	v := &Version{}
	err := repository.db.QueryRow(context, query, versionID).Scan(
		&v.ID, &v.ArtistID, &v.Name, &v.OtherNames, &v.GroupName, &v.URLs,
		&v.IsBanned, &v.UpdaterID, &v.CreatedAt, &v.UpdatedAt,
	)

	return v, dberr.Wrap(err, "get_artist_version")
}

func (repository *PostgresVersionRepository) AppendVersion(context context.Context, v *Version) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING %s
	`,
		schema.RefArtistVersion.Table, schema.RefArtistVersion.ArtistID, schema.RefArtistVersion.Name,
		schema.RefArtistVersion.OtherNames, schema.RefArtistVersion.GroupName, schema.RefArtistVersion.URLs,
		schema.RefArtistVersion.IsBanned, schema.RefArtistVersion.UpdaterID,
		schema.RefArtistVersion.CreatedAt, schema.RefArtistVersion.UpdatedAt,
		schema.RefArtistVersion.ID,
	)

	err := repository.db.QueryRow(context, query,
		v.ArtistID, v.Name, v.OtherNames, v.GroupName, v.URLs, v.IsBanned, v.UpdaterID, v.CreatedAt,
	).Scan(&v.ID)
	return dberr.Wrap(err, "append_artist_version")
}

// AmendLatestVersion rewrites the fields of an existing version row. CreatedAt
// is left untouched so merged edits keep the original window anchor.
func (repository *PostgresVersionRepository) AmendLatestVersion(context context.Context, v *Version) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RefArtistVersion.Table, schema.RefArtistVersion.Name, schema.RefArtistVersion.OtherNames,
		schema.RefArtistVersion.GroupName, schema.RefArtistVersion.URLs, schema.RefArtistVersion.IsBanned,
		schema.RefArtistVersion.UpdaterID, schema.RefArtistVersion.UpdatedAt,
		schema.RefArtistVersion.ID, schema.RefArtistVersion.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		v.ID, v.Name, v.OtherNames, v.GroupName, v.URLs, v.IsBanned, v.UpdaterID,
	).Scan(&v.UpdatedAt)
	return dberr.Wrap(err, "amend_artist_version")
}
