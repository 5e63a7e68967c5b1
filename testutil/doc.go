// Package testutil provides shared helpers for tests: an in-memory
// SQLite database with the full schema, deterministic seed data
// (users, polls, items), bearer-token construction, and small request
// and assertion helpers.
package testutil
