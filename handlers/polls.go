package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/access"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/middleware"
	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/store"
)

type PollHandler struct {
	polls *store.PollStore
	items *store.ItemStore
	cfg   cliparse.Config
}

func NewPollHandler(db *sqlx.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{
		polls: store.NewPollStore(db),
		items: store.NewItemStore(db),
		cfg:   cfg,
	}
}

// List handles GET /api/polls
// Returns the polls owned by the authenticated caller.
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := access.IdentityFrom(r.Context())

	polls, err := h.polls.ListByUser(ident.User.ID)
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SerializePolls(polls))
}

// Create handles POST /api/polls
//
// Auth is optional: with a token the caller becomes the owner, without
// one the poll is anonymous (user_id null). An item batch may ride along
// and is inserted with the poll in a single transaction.
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := access.IdentityFrom(r.Context())

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.EndTime == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing 'end_time' in request body")
		return
	}
	if msg := validateNewItems(req.Items); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now().UTC()
	poll := models.Poll{
		ID:          uuid.NewString(),
		PollName:    req.PollName,
		EndTime:     *req.EndTime,
		DateCreated: now,
	}
	if !ident.Anonymous() {
		poll.UserID = &ident.User.ID
	}
	items := buildItems(req.Items, poll.ID, now)

	var err error
	if len(items) > 0 {
		err = h.polls.InsertWithItems(poll, items)
	} else {
		err = h.polls.Insert(poll)
	}
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("poll created",
		"poll_id", poll.ID,
		"items", len(items),
		"ends", humanize.Time(poll.EndTime),
	)

	w.Header().Set("Location", "/api/polls/"+poll.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.PollWithItems{
		SerializedPoll: poll.Serialize(),
		Items:          models.SerializeItems(items),
	})
}

// Get handles GET /api/polls/{id}
// Public; returns the poll together with its items.
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	poll := access.PollFrom(r.Context())

	items, err := h.items.ListByPoll(poll.ID)
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollWithItems{
		SerializedPoll: poll.Serialize(),
		Items:          models.SerializeItems(items),
	})
}

// Update handles PATCH /api/polls/{id}
//
// Changing a poll's terms invalidates prior voting: the field update and
// the vote reset for every item under the poll commit in one
// transaction.
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	poll := access.PollFrom(r.Context())

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PollName == "" && req.EndTime == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Request body must contain 'poll_name' or 'end_time'")
		return
	}

	if err := h.polls.UpdateAndResetVotes(poll.ID, req); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("poll updated", "poll_id", poll.ID)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/polls/{id}
// Items under the poll are removed by the cascade.
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	poll := access.PollFrom(r.Context())

	if err := h.polls.Delete(poll.ID); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("poll deleted", "poll_id", poll.ID)

	w.WriteHeader(http.StatusNoContent)
}
