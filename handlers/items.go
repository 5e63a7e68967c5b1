package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/access"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/middleware"
	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/store"
)

type ItemHandler struct {
	items *store.ItemStore
	cfg   cliparse.Config
}

func NewItemHandler(db *sqlx.DB, cfg cliparse.Config) *ItemHandler {
	return &ItemHandler{items: store.NewItemStore(db), cfg: cfg}
}

// ListByPoll handles GET /api/items/poll/{poll_id}
// Public; an unknown poll id simply yields an empty list.
func (h *ItemHandler) ListByPoll(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListByPoll(r.PathValue("poll_id"))
	if err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SerializeItems(items))
}

// CreateBatch handles POST /api/items/poll/{poll_id}
//
// The body is an ordered array of candidate items. The whole batch is
// validated before any insert; the first invalid item aborts everything.
// On success all items land in one transaction with votes at zero and a
// shared creation time.
func (h *ItemHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	poll := access.PollFrom(r.Context())

	var newItems []models.NewPollItem
	if err := middleware.ParseJSONBody(r, &newItems); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateNewItems(newItems); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	items := buildItems(newItems, poll.ID, time.Now().UTC())
	if err := h.items.InsertBatch(items); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("items created", "poll_id", poll.ID, "count", len(items))

	w.Header().Set("Location", "/api/items/poll/"+poll.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.SerializeItems(items))
}

// Update handles PATCH /api/items/{id}
// Authorization is transitive: the guard chain has already verified the
// caller owns the item's parent poll.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	item := access.ItemFrom(r.Context())

	var req models.UpdateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ItemName == "" && req.ItemAddress == "" && req.ItemCuisine == "" && req.ItemLink == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Request body must contain one of 'item_name', 'item_address', 'item_cuisine', or 'item_link'")
		return
	}
	if req.ItemLink != "" && !validLink(req.ItemLink) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Link is not a valid URL")
		return
	}

	if err := h.items.Update(item.ID, req); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("item updated", "item_id", item.ID, "poll_id", item.PollID)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item := access.ItemFrom(r.Context())

	if err := h.items.Delete(item.ID); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("item deleted", "item_id", item.ID, "poll_id", item.PollID)

	w.WriteHeader(http.StatusNoContent)
}

// Vote handles PATCH /api/items/vote/{id}
//
// Open to any caller; only the exists check applies. The increment is a
// read-then-write on the looked-up count, so concurrent votes on the
// same item can lose an update.
func (h *ItemHandler) Vote(w http.ResponseWriter, r *http.Request) {
	item := access.ItemFrom(r.Context())

	if err := h.items.SetVotes(item.ID, item.ItemVotes+1); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetVotes handles PATCH /api/items/resetVotes/{poll_id}
// Zeroes every item's votes under a poll the caller owns.
func (h *ItemHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	poll := access.PollFrom(r.Context())

	if err := h.items.ResetVotes(poll.ID); err != nil {
		middleware.InternalErrorResponse(w, h.cfg.Env, err)
		return
	}

	slog.Info("votes reset", "poll_id", poll.ID)

	w.WriteHeader(http.StatusNoContent)
}

// validateNewItems checks a creation batch in order and returns the
// first failure message, or "" when the batch is clean.
func validateNewItems(items []models.NewPollItem) string {
	for _, i := range items {
		if i.ItemName == "" {
			return fmt.Sprintf("Missing '%s' in request body", "item_name")
		}
		if i.ItemLink != "" && !validLink(i.ItemLink) {
			return "Link is not a valid URL"
		}
	}
	return ""
}

// validLink requires an absolute URL with a host, e.g. http://example.com.
func validLink(link string) bool {
	u, err := url.Parse(link)
	return err == nil && u.IsAbs() && u.Host != ""
}

func buildItems(newItems []models.NewPollItem, pollID string, created time.Time) []models.PollItem {
	items := make([]models.PollItem, 0, len(newItems))
	for _, n := range newItems {
		items = append(items, models.PollItem{
			ID:          uuid.NewString(),
			ItemName:    n.ItemName,
			ItemAddress: n.ItemAddress,
			ItemCuisine: n.ItemCuisine,
			ItemLink:    n.ItemLink,
			ItemVotes:   0,
			DateCreated: created,
			PollID:      pollID,
		})
	}
	return items
}
