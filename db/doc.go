/*
Package db handles connection setup and schema creation.

# Opening a Connection

Open returns a *sqlx.DB for the configured backend:

	conn, err := db.Open(cfg)

Supported DATABASE_TYPE values are "postgres" and "sqlite". For SQLite
the DSN is amended to enforce foreign keys and the pool is capped at
one connection, which also makes in-memory databases usable in tests.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes.

# Tables

  - users: Registered accounts, unique user_name
  - polls: Lunch polls, optional owner
  - poll_items: Candidate restaurants with vote counts

# Relationships

	users 1──* polls      (ON DELETE SET NULL: polls outlive their owner)
	polls 1──* poll_items (ON DELETE CASCADE: items die with the poll)

IDs are TEXT UUIDs generated in Go, and timestamps are bound from Go,
so the schema is identical on both backends.
*/
package db
