package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// IDs are TEXT and timestamps are bound from Go, which keeps the schema
// identical on PostgreSQL and SQLite.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    user_name TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    password TEXT NOT NULL,
    date_created TIMESTAMP NOT NULL
);

-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    poll_name TEXT NOT NULL DEFAULT '',
    end_time TIMESTAMP NOT NULL,
    date_created TIMESTAMP NOT NULL,
    user_id TEXT REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_polls_user_id ON polls(user_id);

-- Poll items
CREATE TABLE IF NOT EXISTS poll_items (
    id TEXT PRIMARY KEY,
    item_name TEXT NOT NULL,
    item_address TEXT NOT NULL DEFAULT '',
    item_cuisine TEXT NOT NULL DEFAULT '',
    item_link TEXT NOT NULL DEFAULT '',
    item_votes INTEGER NOT NULL DEFAULT 0 CHECK (item_votes >= 0),
    date_created TIMESTAMP NOT NULL,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_poll_items_poll_id ON poll_items(poll_id);
`
