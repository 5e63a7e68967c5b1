package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/whatsforlunch/server/models"
	"github.com/whatsforlunch/server/testutil"
)

func TestUserStore_ByUserName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := testutil.SeedUsers(t, db)
	s := NewUserStore(db)

	t.Run("finds an existing user", func(t *testing.T) {
		u, err := s.ByUserName("test-user-1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if u.ID != users[0].ID {
			t.Errorf("Expected user %s, got %s", users[0].ID, u.ID)
		}
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		if _, err := s.ByUserName("TEST-USER-1"); err != sql.ErrNoRows {
			t.Errorf("Expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("unknown name yields sql.ErrNoRows", func(t *testing.T) {
		if _, err := s.ByUserName("nobody"); err != sql.ErrNoRows {
			t.Errorf("Expected sql.ErrNoRows, got %v", err)
		}
	})
}

func TestPollStore_UpdateAndResetVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := testutil.SeedUsers(t, db)
	polls := testutil.SeedPolls(t, db, users)
	testutil.SeedItems(t, db, polls)
	s := NewPollStore(db)

	newEnd := time.Date(2030, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		update       models.UpdatePollRequest
		expectedName string
		expectedEnd  time.Time
	}{
		{
			name:         "name only",
			update:       models.UpdatePollRequest{PollName: "Renamed"},
			expectedName: "Renamed",
			expectedEnd:  polls[0].EndTime,
		},
		{
			name:         "end_time only",
			update:       models.UpdatePollRequest{EndTime: &newEnd},
			expectedName: "Renamed",
			expectedEnd:  newEnd,
		},
		{
			name:         "both fields",
			update:       models.UpdatePollRequest{PollName: "Renamed again", EndTime: &newEnd},
			expectedName: "Renamed again",
			expectedEnd:  newEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.UpdateAndResetVotes(polls[0].ID, tt.update); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			p, err := s.ByID(polls[0].ID)
			if err != nil {
				t.Fatalf("Failed to reload poll: %v", err)
			}
			if p.PollName != tt.expectedName {
				t.Errorf("Expected name %q, got %q", tt.expectedName, p.PollName)
			}
			if !p.EndTime.Equal(tt.expectedEnd) {
				t.Errorf("Expected end time %v, got %v", tt.expectedEnd, p.EndTime)
			}
		})
	}

	t.Run("votes under the poll are zeroed", func(t *testing.T) {
		got, err := NewItemStore(db).ListByPoll(polls[0].ID)
		if err != nil {
			t.Fatalf("Failed to list items: %v", err)
		}
		for _, item := range got {
			if item.ItemVotes != 0 {
				t.Errorf("Item %s still has %d votes", item.ID, item.ItemVotes)
			}
		}
	})
}

func TestItemStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := testutil.SeedUsers(t, db)
	polls := testutil.SeedPolls(t, db, users)
	items := testutil.SeedItems(t, db, polls)
	s := NewItemStore(db)

	err := s.Update(items[0].ID, models.UpdateItemRequest{
		ItemAddress: "456 New Ave",
		ItemCuisine: "Korean",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, err := s.ByID(items[0].ID)
	if err != nil {
		t.Fatalf("Failed to reload item: %v", err)
	}
	if got.ItemAddress != "456 New Ave" || got.ItemCuisine != "Korean" {
		t.Errorf("Update not applied: %+v", got)
	}
	if got.ItemName != items[0].ItemName || got.ItemLink != items[0].ItemLink {
		t.Error("Fields outside the update changed")
	}
	if got.ItemVotes != items[0].ItemVotes {
		t.Error("Vote count changed during a field update")
	}
}

// A batch insert with a row that violates a constraint must leave no
// trace of the earlier rows.
func TestItemStore_InsertBatchAtomicity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := testutil.SeedUsers(t, db)
	polls := testutil.SeedPolls(t, db, users)
	testutil.SeedItems(t, db, polls)
	s := NewItemStore(db)

	now := time.Now().UTC()
	batch := []models.PollItem{
		{
			ID:          uuid.NewString(),
			ItemName:    "First",
			DateCreated: now,
			PollID:      polls[0].ID,
		},
		{
			ID:          uuid.NewString(),
			ItemName:    "Orphan",
			DateCreated: now,
			PollID:      "no-such-poll", // violates the foreign key
		},
	}

	if err := s.InsertBatch(batch); err == nil {
		t.Fatal("Expected the batch to fail on the orphan row")
	}

	got, err := s.ListByPoll(polls[0].ID)
	if err != nil {
		t.Fatalf("Failed to list items: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected only the 2 seeded items, got %d", len(got))
	}
}

func TestItemStore_SetAndResetVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := testutil.SeedUsers(t, db)
	polls := testutil.SeedPolls(t, db, users)
	items := testutil.SeedItems(t, db, polls)
	s := NewItemStore(db)

	if err := s.SetVotes(items[0].ID, 10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := s.ByID(items[0].ID)
	if err != nil {
		t.Fatalf("Failed to reload item: %v", err)
	}
	if got.ItemVotes != 10 {
		t.Errorf("Expected 10 votes, got %d", got.ItemVotes)
	}

	if err := s.ResetVotes(polls[0].ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err = s.ByID(items[0].ID)
	if err != nil {
		t.Fatalf("Failed to reload item: %v", err)
	}
	if got.ItemVotes != 0 {
		t.Errorf("Expected 0 votes after reset, got %d", got.ItemVotes)
	}
}
