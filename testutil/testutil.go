package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/whatsforlunch/server/auth"
	"github.com/whatsforlunch/server/cliparse"
	"github.com/whatsforlunch/server/db"
	"github.com/whatsforlunch/server/models"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full
// schema. Every test gets its own database, so no cleanup between tests
// is needed.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(cliparse.Config{
		DatabaseType: "sqlite",
		DatabaseURL:  "file::memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		Env:          "development",
		ClientOrigin: "http://localhost:3000",
		JWTSecret:    "test-jwt-secret",
		JWTExpiry:    time.Hour,
	}
}

// SeedUsers inserts four users whose plaintext password is "password"
// (hashed at minimum bcrypt cost to keep tests fast) and returns them.
func SeedUsers(t *testing.T, conn *sqlx.DB) []models.User {
	t.Helper()

	users := make([]models.User, 4)
	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		users[i] = models.User{
			ID:          uuid.NewString(),
			UserName:    fmt.Sprintf("test-user-%d", i+1),
			FullName:    fmt.Sprintf("Test user %d", i+1),
			Password:    string(hash),
			DateCreated: time.Now().UTC(),
		}
		_, err = conn.Exec(conn.Rebind(`
			INSERT INTO users (id, user_name, full_name, password, date_created)
			VALUES (?, ?, ?, ?, ?)
		`), users[i].ID, users[i].UserName, users[i].FullName, users[i].Password, users[i].DateCreated)
		if err != nil {
			t.Fatalf("Failed to seed user: %v", err)
		}
	}

	return users
}

// SeedPolls inserts four polls: two owned by users[0], one by users[3],
// and one anonymous (no owner). Mirrors the shapes the handlers must
// cope with.
func SeedPolls(t *testing.T, conn *sqlx.DB, users []models.User) []models.Poll {
	t.Helper()

	endTime := time.Date(2029, 1, 22, 16, 28, 32, 0, time.UTC)
	owners := []*string{&users[0].ID, &users[3].ID, &users[0].ID, nil}

	polls := make([]models.Poll, 4)
	for i := range polls {
		polls[i] = models.Poll{
			ID:          uuid.NewString(),
			PollName:    fmt.Sprintf("test-poll-%d", i+1),
			EndTime:     endTime,
			DateCreated: time.Now().UTC(),
			UserID:      owners[i],
		}
		_, err := conn.Exec(conn.Rebind(`
			INSERT INTO polls (id, poll_name, end_time, date_created, user_id)
			VALUES (?, ?, ?, ?, ?)
		`), polls[i].ID, polls[i].PollName, polls[i].EndTime, polls[i].DateCreated, polls[i].UserID)
		if err != nil {
			t.Fatalf("Failed to seed poll: %v", err)
		}
	}

	return polls
}

// SeedItems inserts two items per poll with nonzero vote counts on most,
// and returns them in insertion order.
func SeedItems(t *testing.T, conn *sqlx.DB, polls []models.Poll) []models.PollItem {
	t.Helper()

	votes := []int{3, 2, 0, 4, 6, 1, 3, 2}

	items := make([]models.PollItem, 0, len(votes))
	for n, v := range votes {
		item := models.PollItem{
			ID:          uuid.NewString(),
			ItemName:    fmt.Sprintf("test item %d", n+1),
			ItemAddress: fmt.Sprintf("test item address %d", n+1),
			ItemCuisine: fmt.Sprintf("test item cuisine %d", n+1),
			ItemLink:    fmt.Sprintf("http://example.com/item-%d", n+1),
			ItemVotes:   v,
			DateCreated: time.Now().UTC(),
			PollID:      polls[n/2].ID,
		}
		_, err := conn.Exec(conn.Rebind(`
			INSERT INTO poll_items (id, item_name, item_address, item_cuisine,
			                        item_link, item_votes, date_created, poll_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`), item.ID, item.ItemName, item.ItemAddress, item.ItemCuisine,
			item.ItemLink, item.ItemVotes, item.DateCreated, item.PollID)
		if err != nil {
			t.Fatalf("Failed to seed item: %v", err)
		}
		items = append(items, item)
	}

	return items
}

// AuthHeader returns a valid Authorization header value for a user.
func AuthHeader(t *testing.T, cfg cliparse.Config, user models.User) string {
	t.Helper()

	token, err := auth.CreateToken(user, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		t.Fatalf("Failed to create test token: %v", err)
	}
	return "Bearer " + token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks both the status code and the {"error": ...} body.
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	AssertStatus(t, w, status)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
