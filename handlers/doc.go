/*
Package handlers contains HTTP request handlers for the whats-for-lunch API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - UserHandler: Registration and own-profile retrieval
  - SessionHandler: Login and token refresh
  - PollHandler: Poll lifecycle (create, read, update, delete)
  - ItemHandler: Candidate items, voting, vote resets

Handlers are created via constructor functions that accept *sqlx.DB and
Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

Handlers assume the access guard chain has already run: they read the
resolved identity, poll, or item straight from the request context and
never re-check authorization.

# Polls

	GET    /api/polls      - Caller's polls (auth required)
	POST   /api/polls      - Create, optionally with items (auth optional)
	GET    /api/polls/{id} - Poll with its items (public)
	PATCH  /api/polls/{id} - Update; resets all item votes (owner)
	DELETE /api/polls/{id} - Delete with items (owner)

A poll created without a token is anonymous (user_id null). Changing a
poll's name or end time wipes the standing votes of every item under
it, in the same transaction as the update.

# Items

	GET    /api/items/poll/{poll_id}       - List items (public)
	POST   /api/items/poll/{poll_id}       - Append a batch (owner)
	PATCH  /api/items/{id}                 - Partial update (owner)
	DELETE /api/items/{id}                 - Delete (owner)
	PATCH  /api/items/vote/{id}            - Cast a vote (public)
	PATCH  /api/items/resetVotes/{poll_id} - Zero all votes (owner)

Creation bodies are ordered arrays; the whole batch is validated before
any row is written and the first invalid item aborts everything.

# Error Bodies

Every failure is a JSON object of the form:

	{"error": "Poll doesn't exist"}

Internal failures return the underlying message in development and the
opaque string "server error" in production.
*/
package handlers
