package store

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/models"
)

type ItemStore struct {
	db *sqlx.DB
}

func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) ListByPoll(pollID string) ([]models.PollItem, error) {
	items := []models.PollItem{}
	err := s.db.Select(&items, s.db.Rebind(`
		SELECT id, item_name, item_address, item_cuisine, item_link,
		       item_votes, date_created, poll_id
		FROM poll_items
		WHERE poll_id = ?
		ORDER BY date_created, id
	`), pollID)
	return items, err
}

func (s *ItemStore) ByID(id string) (models.PollItem, error) {
	var i models.PollItem
	err := s.db.Get(&i, s.db.Rebind(`
		SELECT id, item_name, item_address, item_cuisine, item_link,
		       item_votes, date_created, poll_id
		FROM poll_items
		WHERE id = ?
	`), id)
	return i, err
}

// InsertBatch inserts an ordered item batch in one transaction. Callers
// validate the whole batch first; either every item commits or none do.
func (s *ItemStore) InsertBatch(items []models.PollItem) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertItems(tx, items); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *ItemStore) Update(id string, u models.UpdateItemRequest) error {
	set := []string{}
	args := []interface{}{}
	if u.ItemName != "" {
		set = append(set, "item_name = ?")
		args = append(args, u.ItemName)
	}
	if u.ItemAddress != "" {
		set = append(set, "item_address = ?")
		args = append(args, u.ItemAddress)
	}
	if u.ItemCuisine != "" {
		set = append(set, "item_cuisine = ?")
		args = append(args, u.ItemCuisine)
	}
	if u.ItemLink != "" {
		set = append(set, "item_link = ?")
		args = append(args, u.ItemLink)
	}
	args = append(args, id)

	query := "UPDATE poll_items SET " + strings.Join(set, ", ") + " WHERE id = ?"
	_, err := s.db.Exec(s.db.Rebind(query), args...)
	return err
}

func (s *ItemStore) Delete(id string) error {
	_, err := s.db.Exec(s.db.Rebind(`DELETE FROM poll_items WHERE id = ?`), id)
	return err
}

// SetVotes writes an absolute vote count. Vote increment is read-then-
// write on the caller's side; concurrent votes on one item can lose an
// update (TODO: switch to item_votes = item_votes + 1 once product
// confirms lost updates matter).
func (s *ItemStore) SetVotes(id string, votes int) error {
	_, err := s.db.Exec(s.db.Rebind(`
		UPDATE poll_items SET item_votes = ? WHERE id = ?
	`), votes, id)
	return err
}

func (s *ItemStore) ResetVotes(pollID string) error {
	_, err := s.db.Exec(s.db.Rebind(`
		UPDATE poll_items SET item_votes = 0 WHERE poll_id = ?
	`), pollID)
	return err
}

// insertItems runs inside a caller-owned transaction; shared by poll
// creation and standalone batch insertion.
func insertItems(tx *sqlx.Tx, items []models.PollItem) error {
	for _, i := range items {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO poll_items (id, item_name, item_address, item_cuisine,
			                        item_link, item_votes, date_created, poll_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`), i.ID, i.ItemName, i.ItemAddress, i.ItemCuisine, i.ItemLink,
			i.ItemVotes, i.DateCreated, i.PollID); err != nil {
			return err
		}
	}
	return nil
}
