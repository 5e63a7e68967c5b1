package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/whatsforlunch/server/cliparse"
)

// Open connects to the configured database. SQLite connections get the
// foreign_keys pragma so ON DELETE CASCADE works; the modernc driver
// leaves it off per connection otherwise.
func Open(cfg cliparse.Config) (*sqlx.DB, error) {
	switch cfg.DatabaseType {
	case "postgres":
		return sqlx.Open("postgres", cfg.DatabaseURL)
	case "sqlite":
		dsn := cfg.DatabaseURL
		if !strings.Contains(dsn, "_pragma") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
		conn, err := sqlx.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// In-memory databases vanish when their last connection closes,
		// and the pragma applies per connection.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}
