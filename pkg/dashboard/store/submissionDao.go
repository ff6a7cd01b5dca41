package store

import (
	"time"

	"github.com/simantic-io/simantic/pkg/dashboard/model"

	"github.com/russross/meddler"
)

// CreateApplication appends a job application with a server-assigned
// timestamp. Applications are write-once, there is no update path.
func (db *Store) CreateApplication(application *model.Application) error {
	application.Created = time.Now().Unix()
	return meddler.Insert(db, "applications", application)
}

// CreateWaitlistSubmission appends a waitlist signup with a
// server-assigned timestamp
func (db *Store) CreateWaitlistSubmission(submission *model.WaitlistSubmission) error {
	submission.Created = time.Now().Unix()
	return meddler.Insert(db, "waitlist", submission)
}

// CreateEnterpriseContact appends a sales inquiry with a
// server-assigned timestamp
func (db *Store) CreateEnterpriseContact(contact *model.EnterpriseContact) error {
	contact.Created = time.Now().Unix()
	return meddler.Insert(db, "enterprise_contacts", contact)
}
