package store

import (
	"database/sql"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	queries "github.com/simantic-io/simantic/pkg/dashboard/store/sql"

	"github.com/russross/meddler"
)

// IsAccepted tells if a user was let in from the waitlist.
// The row's existence decides, its content does not matter.
func (db *Store) IsAccepted(login string) (bool, error) {
	stmt := queries.Stmt(db.driver, queries.SelectAcceptedUserByLogin)
	data := new(model.AcceptedUser)
	err := meddler.QueryRow(db, data, stmt, login)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AcceptUser lets a user in from the waitlist
func (db *Store) AcceptUser(acceptedUser *model.AcceptedUser) error {
	accepted, err := db.IsAccepted(acceptedUser.Login)
	if err != nil {
		return err
	}
	if accepted {
		return nil
	}
	return meddler.Insert(db, "accepted_users", acceptedUser)
}

// RevokeAcceptance removes a user from the accepted set
func (db *Store) RevokeAcceptance(login string) error {
	stmt := queries.Stmt(db.driver, queries.DeleteAcceptedUser)
	_, err := db.Exec(stmt, login)
	return err
}
