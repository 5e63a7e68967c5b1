/*
Package store wraps all database access behind one type per aggregate:
UserStore, PollStore, and ItemStore.

Queries are written with sqlx "?" bindvars and passed through Rebind,
so the same code runs against PostgreSQL and SQLite. Multi-row writes
(poll-with-items creation, item batches, update-plus-vote-reset) each
run in a single transaction.
*/
package store
