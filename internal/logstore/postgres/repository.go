// Package postgres provides the Postgres-backed daily-log document store.
// Documents live one row per (collection, user, date) with the log itself in
// a JSONB column, mirroring the document-store model the bot was designed
// around while keeping aggregate queries in SQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/hiplog/internal/domain"
	"example.com/hiplog/internal/logstore"
)

// Repository implements logstore.Store on a pgx pool.
type Repository struct {
	pool       *pgxpool.Pool
	collection string
}

// NewRepository constructs a Repository scoped to one collection namespace.
func NewRepository(pool *pgxpool.Pool, collection string) *Repository {
	return &Repository{pool: pool, collection: collection}
}

// EnsureSchema creates the daily_logs table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `CREATE TABLE IF NOT EXISTS daily_logs (
        collection TEXT NOT NULL,
        user_id    TEXT NOT NULL,
        log_date   TEXT NOT NULL,
        doc        JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        PRIMARY KEY (collection, user_id, log_date)
    )`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure daily_logs schema: %w", err)
	}
	return nil
}

// Fetch implements logstore.Store.
func (r *Repository) Fetch(ctx context.Context, user, date string) (logstore.FetchResult, error) {
	if err := logstore.ValidateDate(date); err != nil {
		return logstore.FetchResult{}, err
	}

	const query = `SELECT doc FROM daily_logs WHERE collection=$1 AND user_id=$2 AND log_date=$3`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, r.collection, user, date).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return logstore.FetchResult{}, nil
	}
	if err != nil {
		return logstore.FetchResult{}, err
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return logstore.FetchResult{}, fmt.Errorf("decode stored log %s/%s: %w", user, date, err)
	}
	log, err := domain.FromDocument(date, doc)
	if err != nil {
		return logstore.FetchResult{}, err
	}
	return logstore.FetchResult{Log: log, Found: true}, nil
}

// Save implements logstore.Store with an upsert on the document key.
func (r *Repository) Save(ctx context.Context, user string, log *domain.DailyLog) error {
	if err := logstore.ValidateDate(log.Date()); err != nil {
		return err
	}

	raw, err := json.Marshal(log.Document())
	if err != nil {
		return fmt.Errorf("encode log %s/%s: %w", user, log.Date(), err)
	}

	const query = `INSERT INTO daily_logs (collection, user_id, log_date, doc, updated_at)
        VALUES ($1, $2, $3, $4, now())
        ON CONFLICT (collection, user_id, log_date)
        DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`

	_, err = r.pool.Exec(ctx, query, r.collection, user, log.Date(), raw)
	return err
}

// Delete implements logstore.Store. Deleting an absent document is a no-op.
func (r *Repository) Delete(ctx context.Context, user, date string) error {
	if err := logstore.ValidateDate(date); err != nil {
		return err
	}

	const query = `DELETE FROM daily_logs WHERE collection=$1 AND user_id=$2 AND log_date=$3`
	_, err := r.pool.Exec(ctx, query, r.collection, user, date)
	return err
}

// CountByUser implements logstore.Store.
func (r *Repository) CountByUser(ctx context.Context, user string) (int, error) {
	const query = `SELECT count(*) FROM daily_logs WHERE collection=$1 AND user_id=$2`

	var count int
	if err := r.pool.QueryRow(ctx, query, r.collection, user).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountWithActivity counts the user's logs that contain the named activity.
func (r *Repository) CountWithActivity(ctx context.Context, user, activity string) (int, error) {
	const query = `SELECT count(*) FROM daily_logs
        WHERE collection=$1 AND user_id=$2 AND jsonb_exists(doc->'activities', $3)`

	var count int
	if err := r.pool.QueryRow(ctx, query, r.collection, user, activity).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ActivityNames returns the distinct activity names across the user's logs.
func (r *Repository) ActivityNames(ctx context.Context, user string) ([]string, error) {
	const query = `SELECT DISTINCT jsonb_object_keys(doc->'activities') AS name
        FROM daily_logs WHERE collection=$1 AND user_id=$2 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, r.collection, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
