package store

import (
	"encoding/json"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/store/sql"
	genericStore "github.com/simantic-io/simantic/pkg/store"

	"github.com/russross/meddler"
)

// User gets a user by its login
func (db *Store) User(login string) (*model.User, error) {
	stmt := sql.Stmt(db.driver, sql.SelectUserByLogin)
	data := new(model.User)
	err := meddler.QueryRow(db, data, stmt, login)
	return data, err
}

// UserByEmail gets a user by its email address
func (db *Store) UserByEmail(email string) (*model.User, error) {
	stmt := sql.Stmt(db.driver, sql.SelectUserByEmail)
	data := new(model.User)
	err := meddler.QueryRow(db, data, stmt, email)
	return data, err
}

// UserByGithubLogin gets the user a Github account is linked to
func (db *Store) UserByGithubLogin(githubLogin string) (*model.User, error) {
	stmt := sql.Stmt(db.driver, sql.SelectUserByGithubLogin)
	data := new(model.User)
	err := meddler.QueryRow(db, data, stmt, githubLogin)
	return data, err
}

// Users returns all users in the database
func (db *Store) Users() ([]*model.User, error) {
	stmt := sql.Stmt(db.driver, sql.SelectAllUser)
	var data []*model.User
	err := meddler.QueryAll(db, &data, stmt)
	return data, err
}

// CreateUser stores a new user in the database
func (db *Store) CreateUser(user *model.User) error {
	return meddler.Insert(db, "users", user)
}

// DeleteUser deletes a user in the database
func (db *Store) DeleteUser(login string) error {
	stmt := sql.Stmt(db.driver, sql.DeleteUser)
	_, err := db.Exec(stmt, login)
	return err
}

// UpdateUser updates a user in the database
func (db *Store) UpdateUser(user *model.User) error {
	return meddler.Update(db, "users", user)
}

// UpdateUserToken sets the linked Github token and username of a user.
// It is a merge-write: only the token fields are touched, concurrent
// updates of other fields are not clobbered.
func (db *Store) UpdateUserToken(login string, accessToken string, githubLogin string) error {
	tokenValue, err := genericStore.EncryptionMeddler{EncryptionKey: db.encryptionKey}.PreWrite(accessToken)
	if err != nil {
		return err
	}

	stmt := sql.Stmt(db.driver, sql.UpdateUserToken)
	_, err = db.Exec(stmt, tokenValue, githubLogin, login)
	return err
}

// UpdateUserPins sets the pinned repository ids of a user.
// It is a merge-write: only the pinned_repos field is touched.
func (db *Store) UpdateUserPins(login string, pinnedRepos []int64) error {
	if pinnedRepos == nil {
		pinnedRepos = []int64{}
	}
	pinsJson, err := json.Marshal(pinnedRepos)
	if err != nil {
		return err
	}

	stmt := sql.Stmt(db.driver, sql.UpdateUserPins)
	_, err = db.Exec(stmt, string(pinsJson), login)
	return err
}
