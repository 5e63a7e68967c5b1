package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/whatsforlunch/server/access"
	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)
	testutil.SeedUsers(t, db)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing user_name",
			body:           map[string]string{"password": "Str0ng!pass", "full_name": "Alice A"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing 'user_name' in request body",
		},
		{
			name:           "missing password",
			body:           map[string]string{"user_name": "alice", "full_name": "Alice A"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing 'password' in request body",
		},
		{
			name:           "missing full_name",
			body:           map[string]string{"user_name": "alice", "password": "Str0ng!pass"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing 'full_name' in request body",
		},
		{
			name:           "weak password",
			body:           map[string]string{"user_name": "alice", "password": "alllowercase1!", "full_name": "Alice A"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password must contain at least 1 upper case letter, lower case letter, number, and special character",
		},
		{
			// The seeded name is taken, but the short password is
			// reported first: field checks precede the uniqueness
			// lookup.
			name:           "short password on a taken name reports the password",
			body:           map[string]string{"user_name": "test-user-1", "password": "Ab1!", "full_name": "Impostor"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password must be longer than 8 characters",
		},
		{
			name:           "duplicate user_name",
			body:           map[string]string{"user_name": "test-user-1", "password": "Str0ng!pass", "full_name": "Impostor"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username already taken",
		},
		{
			name:           "valid registration",
			body:           map[string]string{"user_name": "alice", "password": "Str0ng!pass", "full_name": "Alice A"},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/users", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Register(w, req)

			if tt.expectedError != "" {
				testutil.AssertError(t, w, tt.expectedStatus, tt.expectedError)
				return
			}

			testutil.AssertStatus(t, w, tt.expectedStatus)

			var user models.SerializedUser
			testutil.AssertJSON(t, w, &user)
			if user.ID == "" {
				t.Error("Expected a generated user id")
			}
			if user.UserName != "alice" {
				t.Errorf("Unexpected user_name %q", user.UserName)
			}
			if got := w.Header().Get("Location"); got != "/api/users/"+user.ID {
				t.Errorf("Unexpected Location header %q", got)
			}
			// Password hash must never appear in the response.
			if strings.Contains(w.Body.String(), `"password"`) {
				t.Error("Response leaked the password field")
			}
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"user_name":`))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	testutil.AssertError(t, w, http.StatusBadRequest, "Invalid JSON")
}

// Stored markup must come back HTML-escaped on every read.
func TestRegister_EscapesMarkup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	body := map[string]string{
		"user_name": "eve",
		"password":  "Str0ng!pass",
		"full_name": `<script>alert("xss");</script>`,
	}
	req := testutil.MakeRequest("POST", "/api/users", body, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var user models.SerializedUser
	testutil.AssertJSON(t, w, &user)
	if user.FullName != "&lt;script&gt;alert(&#34;xss&#34;);&lt;/script&gt;" {
		t.Errorf("Expected escaped full_name, got %q", user.FullName)
	}
}

func TestGetOwn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	guard := access.NewGuard(db, cfg)
	handler := NewUserHandler(db, cfg)
	users := testutil.SeedUsers(t, db)

	chain := guard.RequireAuth(handler.GetOwn)

	t.Run("returns the caller's own record", func(t *testing.T) {
		headers := map[string]string{"Authorization": testutil.AuthHeader(t, cfg, users[2])}
		req := testutil.MakeRequest("GET", "/api/users", nil, headers)
		w := httptest.NewRecorder()
		chain(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var user models.SerializedUser
		testutil.AssertJSON(t, w, &user)
		if user.ID != users[2].ID {
			t.Errorf("Expected user %s, got %s", users[2].ID, user.ID)
		}
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/users", nil, nil)
		w := httptest.NewRecorder()
		chain(w, req)

		testutil.AssertError(t, w, http.StatusUnauthorized, "Missing bearer token")
	})
}
