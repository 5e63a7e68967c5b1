package store

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/models"
)

type PollStore struct {
	db *sqlx.DB
}

func NewPollStore(db *sqlx.DB) *PollStore {
	return &PollStore{db: db}
}

func (s *PollStore) ListByUser(userID string) ([]models.Poll, error) {
	polls := []models.Poll{}
	err := s.db.Select(&polls, s.db.Rebind(`
		SELECT id, poll_name, end_time, date_created, user_id
		FROM polls
		WHERE user_id = ?
		ORDER BY date_created
	`), userID)
	return polls, err
}

func (s *PollStore) ByID(id string) (models.Poll, error) {
	var p models.Poll
	err := s.db.Get(&p, s.db.Rebind(`
		SELECT id, poll_name, end_time, date_created, user_id
		FROM polls
		WHERE id = ?
	`), id)
	return p, err
}

func (s *PollStore) Insert(p models.Poll) error {
	_, err := s.db.Exec(s.db.Rebind(insertPollQuery),
		p.ID, p.PollName, p.EndTime, p.DateCreated, p.UserID)
	return err
}

// InsertWithItems creates a poll and its initial item batch in one
// transaction; a failure partway leaves no partial state.
func (s *PollStore) InsertWithItems(p models.Poll, items []models.PollItem) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(tx.Rebind(insertPollQuery),
		p.ID, p.PollName, p.EndTime, p.DateCreated, p.UserID); err != nil {
		return err
	}
	if err := insertItems(tx, items); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateAndResetVotes applies a partial poll update and zeroes the vote
// count of every item under the poll, atomically. Editing a poll's terms
// invalidates prior voting, and no PATCH response may be observable while
// stale counts remain.
func (s *PollStore) UpdateAndResetVotes(id string, u models.UpdatePollRequest) error {
	set := []string{}
	args := []interface{}{}
	if u.PollName != "" {
		set = append(set, "poll_name = ?")
		args = append(args, u.PollName)
	}
	if u.EndTime != nil {
		set = append(set, "end_time = ?")
		args = append(args, *u.EndTime)
	}
	args = append(args, id)

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "UPDATE polls SET " + strings.Join(set, ", ") + " WHERE id = ?"
	if _, err := tx.Exec(tx.Rebind(query), args...); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`
		UPDATE poll_items SET item_votes = 0 WHERE poll_id = ?
	`), id); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a poll; its items go with it via ON DELETE CASCADE.
func (s *PollStore) Delete(id string) error {
	_, err := s.db.Exec(s.db.Rebind(`DELETE FROM polls WHERE id = ?`), id)
	return err
}

const insertPollQuery = `
	INSERT INTO polls (id, poll_name, end_time, date_created, user_id)
	VALUES (?, ?, ?, ?, ?)
`
