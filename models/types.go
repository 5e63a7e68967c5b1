package models

import (
	"html"
	"time"
)

// Domain types
//
// IDs are server-generated UUIDs stored as TEXT. Timestamps are set in Go
// so the same schema works on PostgreSQL and SQLite.

type User struct {
	ID          string    `db:"id" json:"id"`
	UserName    string    `db:"user_name" json:"user_name"`
	FullName    string    `db:"full_name" json:"full_name"`
	Password    string    `db:"password" json:"-"` // bcrypt hash, never serialized
	DateCreated time.Time `db:"date_created" json:"date_created"`
}

type Poll struct {
	ID          string    `db:"id" json:"id"`
	PollName    string    `db:"poll_name" json:"poll_name"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
	UserID      *string   `db:"user_id" json:"user_id"` // nil for anonymous polls
}

type PollItem struct {
	ID          string    `db:"id" json:"id"`
	ItemName    string    `db:"item_name" json:"item_name"`
	ItemAddress string    `db:"item_address" json:"item_address"`
	ItemCuisine string    `db:"item_cuisine" json:"item_cuisine"`
	ItemLink    string    `db:"item_link" json:"item_link"`
	ItemVotes   int       `db:"item_votes" json:"item_votes"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
	PollID      string    `db:"poll_id" json:"poll_id"`
}

// Request types

type RegisterUserRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// NewPollItem is a candidate item in a creation batch. Vote counts are
// never accepted from the caller; new items always start at zero.
type NewPollItem struct {
	ItemName    string `json:"item_name"`
	ItemAddress string `json:"item_address"`
	ItemCuisine string `json:"item_cuisine"`
	ItemLink    string `json:"item_link"`
}

type CreatePollRequest struct {
	PollName string        `json:"poll_name"`
	EndTime  *time.Time    `json:"end_time"`
	Items    []NewPollItem `json:"items"`
}

type UpdatePollRequest struct {
	PollName string     `json:"poll_name"`
	EndTime  *time.Time `json:"end_time"`
}

type UpdateItemRequest struct {
	ItemName    string `json:"item_name"`
	ItemAddress string `json:"item_address"`
	ItemCuisine string `json:"item_cuisine"`
	ItemLink    string `json:"item_link"`
}

// Response types
//
// Serialized* mirror the domain types with every text field HTML-escaped,
// so stored markup is neutralized on every read path.

type SerializedUser struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name"`
	FullName    string    `json:"full_name"`
	DateCreated time.Time `json:"date_created"`
}

type SerializedPoll struct {
	ID          string    `json:"id"`
	PollName    string    `json:"poll_name"`
	EndTime     time.Time `json:"end_time"`
	DateCreated time.Time `json:"date_created"`
	UserID      *string   `json:"user_id"`
}

type SerializedPollItem struct {
	ID          string    `json:"id"`
	ItemName    string    `json:"item_name"`
	ItemAddress string    `json:"item_address"`
	ItemCuisine string    `json:"item_cuisine"`
	ItemLink    string    `json:"item_link"`
	ItemVotes   int       `json:"item_votes"`
	DateCreated time.Time `json:"date_created"`
	PollID      string    `json:"poll_id"`
}

type PollWithItems struct {
	SerializedPoll
	Items []SerializedPollItem `json:"items"`
}

type TokenResponse struct {
	AuthToken string `json:"authToken"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Serializers

func (u User) Serialize() SerializedUser {
	return SerializedUser{
		ID:          u.ID,
		UserName:    html.EscapeString(u.UserName),
		FullName:    html.EscapeString(u.FullName),
		DateCreated: u.DateCreated,
	}
}

func (p Poll) Serialize() SerializedPoll {
	return SerializedPoll{
		ID:          p.ID,
		PollName:    html.EscapeString(p.PollName),
		EndTime:     p.EndTime,
		DateCreated: p.DateCreated,
		UserID:      p.UserID,
	}
}

func (i PollItem) Serialize() SerializedPollItem {
	return SerializedPollItem{
		ID:          i.ID,
		ItemName:    html.EscapeString(i.ItemName),
		ItemAddress: html.EscapeString(i.ItemAddress),
		ItemCuisine: html.EscapeString(i.ItemCuisine),
		ItemLink:    html.EscapeString(i.ItemLink),
		ItemVotes:   i.ItemVotes,
		DateCreated: i.DateCreated,
		PollID:      i.PollID,
	}
}

// SerializePolls always returns a non-nil slice so empty lists encode as [].
func SerializePolls(polls []Poll) []SerializedPoll {
	out := make([]SerializedPoll, 0, len(polls))
	for _, p := range polls {
		out = append(out, p.Serialize())
	}
	return out
}

func SerializeItems(items []PollItem) []SerializedPollItem {
	out := make([]SerializedPollItem, 0, len(items))
	for _, i := range items {
		out = append(out, i.Serialize())
	}
	return out
}
