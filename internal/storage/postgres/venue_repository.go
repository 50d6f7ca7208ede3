package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citynights/server/internal/api/pagination"
	"github.com/citynights/server/internal/domain/venues"
	"github.com/citynights/server/internal/slug"
)

var _ venues.Repository = (*VenueRepository)(nil)

// VenueRepository stores venues as JSONB documents keyed by ULID. Partial
// updates are a shallow top-level merge done in SQL, so concurrent writers
// never clobber keys they did not submit.
type VenueRepository struct {
	pool *pgxpool.Pool
}

type venueRow struct {
	ID        string
	Doc       []byte
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (row venueRow) stored() (*venues.Stored, error) {
	var doc map[string]any
	if err := json.Unmarshal(row.Doc, &doc); err != nil {
		return nil, fmt.Errorf("decode venue document %s: %w", row.ID, err)
	}
	stored := &venues.Stored{ID: row.ID, Doc: doc}
	if row.CreatedAt.Valid {
		stored.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		stored.UpdatedAt = row.UpdatedAt.Time
	}
	return stored, nil
}

func (r *VenueRepository) Create(ctx context.Context, id string, doc map[string]any) (*venues.Stored, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode venue document: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO venues (id, doc)
VALUES ($1, $2::jsonb)
RETURNING id, doc, created_at, updated_at
`, id, encoded)

	var data venueRow
	if err := row.Scan(&data.ID, &data.Doc, &data.CreatedAt, &data.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return data.stored()
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*venues.Stored, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, doc, created_at, updated_at
  FROM venues
 WHERE id = $1
`, strings.ToUpper(strings.TrimSpace(id)))

	var data venueRow
	if err := row.Scan(&data.ID, &data.Doc, &data.CreatedAt, &data.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, venues.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return data.stored()
}

func (r *VenueRepository) List(ctx context.Context, filters venues.Filters, paginationArgs venues.Pagination) (venues.ListResult, error) {
	var cursorTimestamp *time.Time
	var cursorID *string
	if strings.TrimSpace(paginationArgs.After) != "" {
		cursor, err := pagination.DecodeVenueCursor(paginationArgs.After)
		if err != nil {
			return venues.ListResult{}, err
		}
		value := cursor.Timestamp.UTC()
		cursorTimestamp = &value
		id := cursor.ULID
		cursorID = &id
	}

	limit := paginationArgs.Limit
	if limit <= 0 {
		limit = 50
	}
	limitPlusOne := limit + 1

	// queryText is stored lowercased with diacritics stripped, so the search
	// term gets the same treatment before matching.
	query := slug.ToASCII(strings.TrimSpace(filters.Query))

	rows, err := r.pool.Query(ctx, `
SELECT v.id, v.doc, v.created_at, v.updated_at
  FROM venues v
 WHERE ($1 = '' OR lower(v.doc->'location'->>'country') = lower($1))
   AND ($2 = '' OR lower(v.doc->'location'->>'city') = lower($2))
   AND ($3 = '' OR v.doc->>'queryText' LIKE '%' || $3 || '%')
   AND (
     $4::timestamptz IS NULL OR
     v.created_at > $4::timestamptz OR
     (v.created_at = $4::timestamptz AND v.id > $5)
   )
 ORDER BY v.created_at ASC, v.id ASC
 LIMIT $6
`,
		strings.TrimSpace(filters.Country),
		strings.TrimSpace(filters.City),
		query,
		cursorTimestamp,
		cursorID,
		limitPlusOne,
	)
	if err != nil {
		return venues.ListResult{}, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	items := make([]venues.Stored, 0, limitPlusOne)
	for rows.Next() {
		var data venueRow
		if err := rows.Scan(&data.ID, &data.Doc, &data.CreatedAt, &data.UpdatedAt); err != nil {
			return venues.ListResult{}, fmt.Errorf("scan venues: %w", err)
		}
		stored, err := data.stored()
		if err != nil {
			return venues.ListResult{}, err
		}
		items = append(items, *stored)
	}
	if err := rows.Err(); err != nil {
		return venues.ListResult{}, fmt.Errorf("iterate venues: %w", err)
	}

	result := venues.ListResult{}
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		if !last.CreatedAt.IsZero() {
			result.NextCursor = pagination.EncodeVenueCursor(last.CreatedAt, last.ID)
		}
	}
	result.Venues = items
	return result, nil
}

func (r *VenueRepository) Update(ctx context.Context, id string, partial map[string]any) (*venues.Stored, error) {
	encoded, err := json.Marshal(partial)
	if err != nil {
		return nil, fmt.Errorf("encode venue document: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
UPDATE venues
   SET doc = doc || $2::jsonb,
       updated_at = now()
 WHERE id = $1
RETURNING id, doc, created_at, updated_at
`, strings.ToUpper(strings.TrimSpace(id)), encoded)

	var data venueRow
	if err := row.Scan(&data.ID, &data.Doc, &data.CreatedAt, &data.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, venues.ErrNotFound
		}
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return data.stored()
}

func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, strings.ToUpper(strings.TrimSpace(id)))
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return venues.ErrNotFound
	}
	return nil
}
