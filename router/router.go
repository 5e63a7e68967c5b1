package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/access"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/handlers"
	"github.com/whatsforlunch/server/middleware"
)

// NewRouter wires every route to its handler behind the authorization
// steps it needs. Each route declares its chain explicitly: auth step
// first, then resource lookup, then ownership, then the handler.
func NewRouter(db *sqlx.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	guard := access.NewGuard(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, cfg)
	logged := middleware.WithLogging

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Users
	mux.HandleFunc("POST /api/users", logged(userHandler.Register))
	mux.HandleFunc("GET /api/users", logged(guard.RequireAuth(userHandler.GetOwn)))

	// Sessions
	mux.HandleFunc("POST /api/auth/login", logged(sessionHandler.Login))
	mux.HandleFunc("POST /api/auth/refresh", logged(guard.RequireAuth(sessionHandler.Refresh)))

	// Polls
	mux.HandleFunc("GET /api/polls", logged(guard.RequireAuth(pollHandler.List)))
	mux.HandleFunc("POST /api/polls", logged(guard.OptionalAuth(pollHandler.Create)))
	mux.HandleFunc("GET /api/polls/{id}", logged(guard.PollExists("id", pollHandler.Get)))
	mux.HandleFunc("PATCH /api/polls/{id}", logged(
		guard.RequireAuth(guard.PollExists("id", guard.PollOwner(pollHandler.Update)))))
	mux.HandleFunc("DELETE /api/polls/{id}", logged(
		guard.RequireAuth(guard.PollExists("id", guard.PollOwner(pollHandler.Delete)))))

	// Poll items
	mux.HandleFunc("GET /api/items/poll/{poll_id}", logged(itemHandler.ListByPoll))
	mux.HandleFunc("POST /api/items/poll/{poll_id}", logged(
		guard.OptionalAuth(guard.PollExists("poll_id", guard.PollOwner(itemHandler.CreateBatch)))))
	mux.HandleFunc("PATCH /api/items/{id}", logged(
		guard.RequireAuth(guard.ItemExists(guard.ItemPollOwner(itemHandler.Update)))))
	mux.HandleFunc("DELETE /api/items/{id}", logged(
		guard.RequireAuth(guard.ItemExists(guard.ItemPollOwner(itemHandler.Delete)))))

	// Voting (open to any caller, item just has to exist)
	mux.HandleFunc("PATCH /api/items/vote/{id}", logged(guard.ItemExists(itemHandler.Vote)))
	mux.HandleFunc("PATCH /api/items/resetVotes/{poll_id}", logged(
		guard.RequireAuth(guard.PollExists("poll_id", guard.PollOwner(itemHandler.ResetVotes)))))

	// Root endpoint
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("whats-for-lunch API v1"))
	})

	return mux
}
