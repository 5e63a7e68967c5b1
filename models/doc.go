/*
Package models defines request, response, and domain types for the API.

Domain types (User, Poll, PollItem) carry both db and json tags and are
never written to the wire directly: every response goes through a
Serialize method that copies the record into a Serialized* counterpart
with all text fields HTML-escaped. A user's password hash has no place
in any response and is excluded at the type level.

Poll.UserID is a *string; nil marks an anonymous poll and serializes as
JSON null.
*/
package models
