/*
Package main provides the entry point for the whats-for-lunch API server.

whats-for-lunch is a lunch-decision backend: users create polls of
candidate restaurants, share them, and let anyone vote on where to eat.
Polls can be owned by a registered user or created anonymously.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - JWT_SECRET (-jwt-secret): Secret for signing auth tokens

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - ENV (-e): "development" or "production"
  - CLIENT_ORIGIN: Allowed CORS origin
  - JWT_EXPIRY (-jwt-expiry): Token lifetime (default: 12h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, sessions, polls, items)
  - access: Authentication and ownership guard chains
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - store: Database access per aggregate
  - models: Request/response types
  - auth: Password hashing and JWT handling
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
