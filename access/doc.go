/*
Package access implements the authorization chains guarding every route.

Each mutating route composes three independent steps, always in the
same order:

 1. Token check: RequireAuth or OptionalAuth resolves the caller to an
    Identity and rejects bad tokens with 401.
 2. Resource lookup: PollExists or ItemExists resolves the path id and
    rejects unknown resources with 404.
 3. Ownership: PollOwner or ItemPollOwner compares the identity against
    the poll's owner and rejects mismatches with 403.

Because the steps short-circuit in order, a caller with a bad token
always sees 401 even when the resource is also missing, and a missing
resource always sees 404 even when the caller would not own it.

# Identities

An Identity is either a loaded user or anonymous (no Authorization
header on an OptionalAuth route). Ownership matching is strict both
ways: an authenticated user never matches an owner-less poll, and the
anonymous identity never matches an owned one.

# Transitive Item Ownership

Items carry no owner of their own. ItemPollOwner loads the item's
parent poll and applies the same ownership rule to it, so whoever
controls the poll controls every item under it.

# Usage

	guard := access.NewGuard(db, cfg)
	mux.HandleFunc("PATCH /api/polls/{id}",
		guard.RequireAuth(guard.PollExists("id", guard.PollOwner(handler.Update))))

Downstream handlers read what the chain resolved from the request
context:

	ident := access.IdentityFrom(r.Context())
	poll := access.PollFrom(r.Context())
	item := access.ItemFrom(r.Context())
*/
package access
