package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/access"
	"github.com/whatsforlunch/server/auth"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/middleware"
	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/store"
)

type SessionHandler struct {
	users *store.UserStore
	cfg   cliparse.Config
}

func NewSessionHandler(db *sqlx.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{users: store.NewUserStore(db), cfg: cfg}
}

// Login handles POST /api/auth/login
// An unknown username and a wrong password produce the same message, so
// the endpoint does not leak which usernames exist.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing 'user_name' in request body")
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing 'password' in request body")
		return
	}

	user, err := h.users.ByUserName(req.UserName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Incorrect user_name or password")
		return
	}
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Incorrect user_name or password")
		return
	}

	token, err := auth.CreateToken(user, h.cfg.JWTSecret, h.cfg.JWTExpiry)
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{AuthToken: token})
}

// Refresh handles POST /api/auth/refresh
// Issues a fresh token for the already-authenticated caller.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ident := access.IdentityFrom(r.Context())

	token, err := auth.CreateToken(*ident.User, h.cfg.JWTSecret, h.cfg.JWTExpiry)
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{AuthToken: token})
}
