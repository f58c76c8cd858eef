// Package pg implements store.Store over Postgres (pgx stdlib driver).
// Composite writes run inside a transaction so the book upsert, recommender
// upsert and recommendation insert land together or not at all.
package pg

import (
	"context"
	"database/sql"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		category TEXT,
		image_url TEXT,
		publish_year TEXT,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS recommenders (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		organization TEXT,
		industry TEXT,
		image_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id SERIAL PRIMARY KEY,
		book_id INTEGER NOT NULL REFERENCES books(id),
		recommender_id INTEGER NOT NULL REFERENCES recommenders(id),
		comment TEXT,
		recommendation_date TEXT,
		recommendation_medium TEXT,
		source TEXT,
		source_url TEXT,
		reason TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS recommendations_book_id_idx ON recommendations (book_id)`,
	`CREATE INDEX IF NOT EXISTS recommendations_recommender_id_idx ON recommendations (recommender_id)`,
}

// EnsureSchema creates the three tables on startup if they are missing.
// Title/name uniqueness is deliberately not a constraint here; it is enforced
// procedurally by the find-or-create paths.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
