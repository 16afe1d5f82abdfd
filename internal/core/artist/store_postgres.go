package artist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/artdex/internal/platform/database/schema"
	"github.com/taibuivan/artdex/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListArtists(context context.Context, f Filter, limit, offset int) ([]*Artist, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE TRUE
	`,
		schema.RefArtist.ID, schema.RefArtist.Name, schema.RefArtist.OtherNames, schema.RefArtist.GroupName,
		schema.RefArtist.IsActive, schema.RefArtist.IsBanned, schema.RefArtist.CreatedAt, schema.RefArtist.UpdatedAt,
		schema.RefArtist.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, schema.RefArtist.Table)

	args := []any{}
	countArgs := []any{}

	if !f.IncludeInactive {
		condition := fmt.Sprintf(` AND %s = TRUE`, schema.RefArtist.IsActive)
		query += condition
		countQuery += condition
	}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		condition := fmt.Sprintf(` AND (name ILIKE $1 OR array_to_string(othernames, ' ') ILIKE $1
			OR EXISTS (SELECT 1 FROM %s u WHERE u.%s = %s.%s AND u.%s ILIKE $1))`,
			schema.RefArtistURL.Table, schema.RefArtistURL.ArtistID, schema.RefArtist.Table, schema.RefArtist.ID,
			schema.RefArtistURL.URL,
		)
		query += condition
		countQuery += condition
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.RefArtist.Name) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_artists")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_artists")
	}
	defer rows.Close()

	var artists []*Artist
	for rows.Next() {
		a := &Artist{}
		if err := rows.Scan(&a.ID, &a.Name, &a.OtherNames, &a.GroupName, &a.IsActive, &a.IsBanned, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist")
		}
		artists = append(artists, a)
	}

	if err := repository.attachURLs(context, artists); err != nil {
		return nil, 0, err
	}

	return artists, total, nil
}

func (repository *PostgresRepository) GetArtist(context context.Context, id int) (*Artist, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefArtist.ID, schema.RefArtist.Name, schema.RefArtist.OtherNames, schema.RefArtist.GroupName,
		schema.RefArtist.IsActive, schema.RefArtist.IsBanned, schema.RefArtist.CreatedAt, schema.RefArtist.UpdatedAt,
		schema.RefArtist.Table, schema.RefArtist.ID,
	)

	a := &Artist{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.Name, &a.OtherNames, &a.GroupName, &a.IsActive, &a.IsBanned, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}

	if err := repository.attachURLs(context, []*Artist{a}); err != nil {
		return nil, err
	}
	return a, nil
}

func (repository *PostgresRepository) GetArtistByName(context context.Context, name string) (*Artist, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefArtist.ID, schema.RefArtist.Name, schema.RefArtist.OtherNames, schema.RefArtist.GroupName,
		schema.RefArtist.IsActive, schema.RefArtist.IsBanned, schema.RefArtist.CreatedAt, schema.RefArtist.UpdatedAt,
		schema.RefArtist.Table, schema.RefArtist.Name,
	)

	a := &Artist{}
	err := repository.db.QueryRow(context, query, name).Scan(
		&a.ID, &a.Name, &a.OtherNames, &a.GroupName, &a.IsActive, &a.IsBanned, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist_by_name")
	}

	if err := repository.attachURLs(context, []*Artist{a}); err != nil {
		return nil, err
	}
	return a, nil
}

func (repository *PostgresRepository) CreateArtist(context context.Context, a *Artist) error {

	// Artist row and its URL rows land atomically.
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_artist_tx")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefArtist.Table, schema.RefArtist.Name, schema.RefArtist.OtherNames, schema.RefArtist.GroupName,
		schema.RefArtist.IsActive, schema.RefArtist.IsBanned, schema.RefArtist.CreatedAt, schema.RefArtist.UpdatedAt,
		schema.RefArtist.ID, schema.RefArtist.CreatedAt, schema.RefArtist.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, a.Name, a.OtherNames, a.GroupName, a.IsActive, a.IsBanned).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_artist")
	}

	insertURL := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefArtistURL.Table, schema.RefArtistURL.ArtistID, schema.RefArtistURL.URL,
		schema.RefArtistURL.NormalizedURL, schema.RefArtistURL.SearchKey, schema.RefArtistURL.IsActive,
		schema.RefArtistURL.CreatedAt, schema.RefArtistURL.UpdatedAt,
		schema.RefArtistURL.ID, schema.RefArtistURL.CreatedAt, schema.RefArtistURL.UpdatedAt,
	)

	for _, u := range a.URLs {
		u.ArtistID = a.ID
		err = transaction.QueryRow(context, insertURL, a.ID, u.URL, u.NormalizedURL, SearchKey(u.NormalizedURL), u.IsActive).
			Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_artist_url")
		}
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) UpdateArtist(context context.Context, a *Artist, diff URLSetDiff) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_artist_tx")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RefArtist.Table, schema.RefArtist.Name, schema.RefArtist.OtherNames, schema.RefArtist.GroupName,
		schema.RefArtist.IsBanned, schema.RefArtist.UpdatedAt, schema.RefArtist.ID, schema.RefArtist.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, a.ID, a.Name, a.OtherNames, a.GroupName, a.IsBanned).Scan(&a.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_artist")
	}

	// Step 1: Flip activity on rows whose signed state changed. Row identity
	// is preserved, so resubmitting '-http://a.com' as 'http://a.com' keeps
	// a single stored URL.
	flipQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		schema.RefArtistURL.Table, schema.RefArtistURL.IsActive, schema.RefArtistURL.UpdatedAt,
		schema.RefArtistURL.ID, schema.RefArtistURL.UpdatedAt,
	)
	for _, u := range diff.Updated {
		if err := transaction.QueryRow(context, flipQuery, u.ID, u.IsActive).Scan(&u.UpdatedAt); err != nil {
			return dberr.Wrap(err, "update_artist_url")
		}
	}

	// Step 2: Insert rows new to this submission.
	insertURL := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefArtistURL.Table, schema.RefArtistURL.ArtistID, schema.RefArtistURL.URL,
		schema.RefArtistURL.NormalizedURL, schema.RefArtistURL.SearchKey, schema.RefArtistURL.IsActive,
		schema.RefArtistURL.CreatedAt, schema.RefArtistURL.UpdatedAt,
		schema.RefArtistURL.ID, schema.RefArtistURL.CreatedAt, schema.RefArtistURL.UpdatedAt,
	)
	for _, u := range diff.Added {
		u.ArtistID = a.ID
		err = transaction.QueryRow(context, insertURL, a.ID, u.URL, u.NormalizedURL, SearchKey(u.NormalizedURL), u.IsActive).
			Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "insert_artist_url")
		}
	}

	// Step 3: Drop rows absent from this submission.
	if len(diff.Removed) > 0 {
		removedIDs := make([]int, 0, len(diff.Removed))
		for _, u := range diff.Removed {
			removedIDs = append(removedIDs, u.ID)
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)`,
			schema.RefArtistURL.Table, schema.RefArtistURL.ArtistID, schema.RefArtistURL.ID,
		)
		if _, err := transaction.Exec(context, deleteQuery, a.ID, removedIDs); err != nil {
			return dberr.Wrap(err, "delete_artist_urls")
		}
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) SetArtistActive(context context.Context, id int, isActive bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.RefArtist.Table, schema.RefArtist.IsActive, schema.RefArtist.UpdatedAt, schema.RefArtist.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, isActive)
	if err != nil {
		return dberr.Wrap(err, "set_artist_active")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) FindActiveByNormalizedURL(context context.Context, searchKey string) ([]*Artist, error) {
	query := repository.finderQuery(fmt.Sprintf(`u.%s = $1`, schema.RefArtistURL.SearchKey))
	return repository.queryFinder(context, query, "find_by_normalized_url", searchKey)
}

func (repository *PostgresRepository) FindActiveByURLPrefix(context context.Context, searchKey string) ([]*Artist, error) {
	query := repository.finderQuery(fmt.Sprintf(`(u.%s = $1 OR u.%s LIKE $2)`,
		schema.RefArtistURL.SearchKey, schema.RefArtistURL.SearchKey,
	))
	return repository.queryFinder(context, query, "find_by_url_prefix", searchKey, escapeLike(searchKey)+`/%`)
}

// finderQuery builds the shared lookup shape: active URL rows of active
// artists, deduplicated per artist.
func (repository *PostgresRepository) finderQuery(urlCondition string) string {
	return fmt.Sprintf(`
		SELECT DISTINCT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s
		FROM %s a
		JOIN %s u ON u.%s = a.%s
		WHERE %s AND u.%s = TRUE AND a.%s = TRUE
		ORDER BY a.%s ASC
	`,
		schema.RefArtist.ID, schema.RefArtist.Name, schema.RefArtist.OtherNames, schema.RefArtist.GroupName,
		schema.RefArtist.IsActive, schema.RefArtist.IsBanned, schema.RefArtist.CreatedAt, schema.RefArtist.UpdatedAt,
		schema.RefArtist.Table,
		schema.RefArtistURL.Table, schema.RefArtistURL.ArtistID, schema.RefArtist.ID,
		urlCondition, schema.RefArtistURL.IsActive, schema.RefArtist.IsActive,
		schema.RefArtist.ID,
	)
}

func (repository *PostgresRepository) queryFinder(context context.Context, query, action string, args ...any) ([]*Artist, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var artists []*Artist
	for rows.Next() {
		a := &Artist{}
		if err := rows.Scan(&a.ID, &a.Name, &a.OtherNames, &a.GroupName, &a.IsActive, &a.IsBanned, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_artist")
		}
		artists = append(artists, a)
	}

	if err := repository.attachURLs(context, artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// attachURLs loads the URL rows of the given artists in one round trip.
func (repository *PostgresRepository) attachURLs(context context.Context, artists []*Artist) error {
	if len(artists) == 0 {
		return nil
	}

	byID := make(map[int]*Artist, len(artists))
	ids := make([]int, 0, len(artists))
	for _, a := range artists {
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC
	`,
		schema.RefArtistURL.ID, schema.RefArtistURL.ArtistID, schema.RefArtistURL.URL,
		schema.RefArtistURL.NormalizedURL, schema.RefArtistURL.IsActive,
		schema.RefArtistURL.CreatedAt, schema.RefArtistURL.UpdatedAt,
		schema.RefArtistURL.Table, schema.RefArtistURL.ArtistID,
		schema.RefArtistURL.ID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_artist_urls")
	}
	defer rows.Close()

	for rows.Next() {
		u := &ArtistURL{}
		if err := rows.Scan(&u.ID, &u.ArtistID, &u.URL, &u.NormalizedURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return dberr.Wrap(err, "scan_artist_url")
		}
		byID[u.ArtistID].URLs = append(byID[u.ArtistID].URLs, u)
	}

	return nil
}

// escapeLike neutralizes LIKE metacharacters so a search key is matched
// literally before the appended '/%' wildcard.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func itos(i int) string {
	return strconv.Itoa(i)
}
