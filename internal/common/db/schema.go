package db

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema for the two collections. Both carry a generated tsvector so the
// store computes search relevance itself; tweets weight the message above
// the author name.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		key           text PRIMARY KEY,
		username      text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		following     text[] NOT NULL DEFAULT '{}',
		created_at    timestamptz NOT NULL DEFAULT now(),
		search        tsvector GENERATED ALWAYS AS (to_tsvector('simple', username)) STORED
	)`,
	`CREATE INDEX IF NOT EXISTS accounts_search_idx ON accounts USING GIN (search)`,
	`CREATE TABLE IF NOT EXISTS tweets (
		id          uuid PRIMARY KEY,
		message     text NOT NULL,
		author      text NOT NULL,
		date        timestamptz NOT NULL DEFAULT now(),
		in_reply_to uuid,
		search      tsvector GENERATED ALWAYS AS (
			setweight(to_tsvector('english', message), 'A') ||
			setweight(to_tsvector('simple', author), 'B')
		) STORED
	)`,
	`CREATE INDEX IF NOT EXISTS tweets_search_idx ON tweets USING GIN (search)`,
	`CREATE INDEX IF NOT EXISTS tweets_author_idx ON tweets (author)`,
}

// EnsureSchema applies the idempotent DDL at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
