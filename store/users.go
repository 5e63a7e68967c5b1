package store

import (
	"github.com/jmoiron/sqlx"

	"github.com/whatsforlunch/server/models"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Insert(u models.User) error {
	_, err := s.db.Exec(s.db.Rebind(`
		INSERT INTO users (id, user_name, full_name, password, date_created)
		VALUES (?, ?, ?, ?, ?)
	`), u.ID, u.UserName, u.FullName, u.Password, u.DateCreated)
	return err
}

func (s *UserStore) ByID(id string) (models.User, error) {
	var u models.User
	err := s.db.Get(&u, s.db.Rebind(`
		SELECT id, user_name, full_name, password, date_created
		FROM users
		WHERE id = ?
	`), id)
	return u, err
}

// ByUserName is a case-sensitive exact match; it backs both login and
// the registration uniqueness check.
func (s *UserStore) ByUserName(userName string) (models.User, error) {
	var u models.User
	err := s.db.Get(&u, s.db.Rebind(`
		SELECT id, user_name, full_name, password, date_created
		FROM users
		WHERE user_name = ?
	`), userName)
	return u, err
}
