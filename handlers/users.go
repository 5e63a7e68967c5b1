package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/access"
	"github.com/whatsforlunch/server/auth"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/middleware"
	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/store"
)

type UserHandler struct {
	users *store.UserStore
	cfg   cliparse.Config
}

func NewUserHandler(db *sqlx.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{users: store.NewUserStore(db), cfg: cfg}
}

// Register handles POST /api/users
//
// Validation order is deterministic: required fields, then the password
// policy, then username uniqueness. Uniqueness runs last because it is
// the only rule needing a lookup.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	required := []struct {
		name  string
		value string
	}{
		{"user_name", req.UserName},
		{"password", req.Password},
		{"full_name", req.FullName},
	}
	for _, f := range required {
		if f.value == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Missing '%s' in request body", f.name))
			return
		}
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.users.ByUserName(req.UserName)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username already taken")
		return
	}
	if err != sql.ErrNoRows {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	user := models.User{
		ID:          uuid.NewString(),
		UserName:    req.UserName,
		FullName:    req.FullName,
		Password:    hash,
		DateCreated: time.Now().UTC(),
	}
	if err := h.users.Insert(user); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)

	w.Header().Set("Location", "/api/users/"+user.ID)
	middleware.JSONResponse(w, http.StatusCreated, user.Serialize())
}

// GetOwn handles GET /api/users
// Returns the record of the caller identified by the bearer token.
func (h *UserHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	ident := access.IdentityFrom(r.Context())
	middleware.JSONResponse(w, http.StatusOK, ident.User.Serialize())
}
