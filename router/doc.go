/*
Package router defines HTTP routes for the whats-for-lunch API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Users and sessions:

	POST /api/users        - Register
	GET  /api/users        - Own profile (auth)
	POST /api/auth/login   - Log in, returns a bearer token
	POST /api/auth/refresh - Fresh token (auth)

Polls:

	GET    /api/polls      - Own polls (auth)
	POST   /api/polls      - Create (auth optional)
	GET    /api/polls/{id} - Read with items
	PATCH  /api/polls/{id} - Update (owner)
	DELETE /api/polls/{id} - Delete (owner)

Items and voting:

	GET    /api/items/poll/{poll_id}       - List
	POST   /api/items/poll/{poll_id}       - Append batch (owner)
	PATCH  /api/items/{id}                 - Update (owner)
	DELETE /api/items/{id}                 - Delete (owner)
	PATCH  /api/items/vote/{id}            - Vote (public)
	PATCH  /api/items/resetVotes/{poll_id} - Reset votes (owner)

Every route spells out its guard chain at the registration site, so the
full authorization story of an endpoint is readable in one line.
*/
package router
