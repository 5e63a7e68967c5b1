package access

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/auth"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/middleware"
	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/store"
)

type ctxKey int

const (
	identityKey ctxKey = iota + 1
	pollKey
	itemKey
)

// Identity is the authenticated caller for one request. A zero Identity
// is the anonymous sentinel used where auth is optional; it never
// matches a non-null poll owner.
type Identity struct {
	User *models.User
}

func (id Identity) Anonymous() bool {
	return id.User == nil
}

// Guard provides the ordered authorization steps applied ahead of store
// mutations: RequireAuth/OptionalAuth, then a resource-exists check,
// then an ownership check. Each step either attaches what it resolved
// to the request context and calls the next step, or writes the failure
// and stops. Steps are side-effect-free on failure, so the first failing
// checkpoint fully decides the response.
type Guard struct {
	users *store.UserStore
	polls *store.PollStore
	items *store.ItemStore
	cfg   cliparse.Config
}

func NewGuard(db *sqlx.DB, cfg cliparse.Config) *Guard {
	return &Guard{
		users: store.NewUserStore(db),
		polls: store.NewPollStore(db),
		items: store.NewItemStore(db),
		cfg:   cfg,
	}
}

// RequireAuth rejects requests without a valid bearer token. The token
// must parse, verify, and still resolve to a known user before the
// identity is attached to the request context.
func (g *Guard) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(withIdentity(r.Context(), ident)))
	}
}

// OptionalAuth behaves exactly like RequireAuth when an Authorization
// header is present, and attaches the anonymous identity when it is
// absent. Used only where anonymous authorship is legal; the ownership
// check decides whether anonymous is actually allowed.
func (g *Guard) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next(w, r.WithContext(withIdentity(r.Context(), Identity{})))
			return
		}
		ident, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(withIdentity(r.Context(), ident)))
	}
}

func (g *Guard) authenticate(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
		return Identity{}, false
	}

	userID, err := auth.ParseToken(header[len("bearer "):], g.cfg.JWTSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized request")
		return Identity{}, false
	}

	user, err := g.users.ByID(userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized request")
		return Identity{}, false
	}
	if err != nil {
		middleware.InternalErrorResponse(w, g.cfg.Env, err)
		return Identity{}, false
	}

	return Identity{User: &user}, true
}

// PollExists resolves the poll named by the given path parameter and
// attaches it to the request context. Runs after any auth step and
// before any ownership step.
func (g *Guard) PollExists(param string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poll, err := g.polls.ByID(r.PathValue(param))
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll doesn't exist")
			return
		}
		if err != nil {
			middleware.InternalErrorResponse(w, g.cfg.Env, err)
			return
		}
		next(w, r.WithContext(withPoll(r.Context(), &poll)))
	}
}

// ItemExists resolves the item named by the {id} path parameter.
func (g *Guard) ItemExists(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := g.items.ByID(r.PathValue("id"))
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Item doesn't exist")
			return
		}
		if err != nil {
			middleware.InternalErrorResponse(w, g.cfg.Env, err)
			return
		}
		next(w, r.WithContext(withItem(r.Context(), &item)))
	}
}

// PollOwner compares the context poll's owner against the context
// identity. An owner-less poll is only "owned" by the anonymous
// identity; an owned poll only by that exact user.
func (g *Guard) PollOwner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFrom(r.Context())
		poll := PollFrom(r.Context())
		if !owns(ident, poll) {
			middleware.ErrorResponse(w, http.StatusForbidden, "Poll belongs to a different user")
			return
		}
		next(w, r)
	}
}

// ItemPollOwner authorizes an item mutation through the item's parent
// poll: it loads the poll the context item belongs to and compares its
// owner against the identity. The item carries no owner of its own, so
// poll-level and item-level mutation share one source of truth.
func (g *Guard) ItemPollOwner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFrom(r.Context())
		item := ItemFrom(r.Context())

		poll, err := g.polls.ByID(item.PollID)
		if err != nil {
			// The FK guarantees the parent exists; any failure here is
			// a storage fault, not a missing resource.
			middleware.InternalErrorResponse(w, g.cfg.Env, err)
			return
		}
		if !owns(ident, &poll) {
			middleware.ErrorResponse(w, http.StatusForbidden, "Poll belongs to a different user")
			return
		}
		next(w, r.WithContext(withPoll(r.Context(), &poll)))
	}
}

func owns(ident Identity, poll *models.Poll) bool {
	if poll.UserID == nil {
		return ident.Anonymous()
	}
	return !ident.Anonymous() && *poll.UserID == ident.User.ID
}

// Context plumbing

func withIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

func withPoll(ctx context.Context, poll *models.Poll) context.Context {
	return context.WithValue(ctx, pollKey, poll)
}

func withItem(ctx context.Context, item *models.PollItem) context.Context {
	return context.WithValue(ctx, itemKey, item)
}

// IdentityFrom returns the identity attached by RequireAuth or
// OptionalAuth, or the anonymous identity if neither ran.
func IdentityFrom(ctx context.Context) Identity {
	if ident, ok := ctx.Value(identityKey).(Identity); ok {
		return ident
	}
	return Identity{}
}

// PollFrom returns the poll attached by PollExists or ItemPollOwner.
func PollFrom(ctx context.Context) *models.Poll {
	poll, _ := ctx.Value(pollKey).(*models.Poll)
	return poll
}

// ItemFrom returns the item attached by ItemExists.
func ItemFrom(ctx context.Context) *models.PollItem {
	item, _ := ctx.Value(itemKey).(*models.PollItem)
	return item
}
