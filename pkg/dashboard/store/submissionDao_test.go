package store

import (
	"testing"

	"github.com/simantic-io/simantic/pkg/dashboard/model"

	"github.com/stretchr/testify/assert"
)

func TestCreateApplication(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	application := model.Application{
		Name:              "Jane Doe",
		Email:             "jane@doe.io",
		Location:          "Berlin, Germany",
		ResumeURL:         "/files/resumes/123_abc_resume.pdf",
		ResumeFileName:    "resume.pdf",
		ResumeContentType: "application/pdf",
		ResumeSize:        12345,
	}

	err := s.CreateApplication(&application)
	assert.Nil(t, err)
	assert.NotEqual(t, int64(0), application.Created)
}

func TestCreateWaitlistSubmission(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	submission := model.WaitlistSubmission{
		Name:     "Jane Doe",
		Email:    "jane@doe.io",
		Location: "Berlin, Germany",
		UseCase:  "KiCad, Altium",
		Company:  "Acme",
		Position: "EE",
	}

	err := s.CreateWaitlistSubmission(&submission)
	assert.Nil(t, err)
	assert.NotEqual(t, int64(0), submission.Created)
}

func TestCreateEnterpriseContact(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	contact := model.EnterpriseContact{
		Name:    "Jane Doe",
		Email:   "jane@doe.io",
		Company: "Acme",
		Status:  "new",
	}

	err := s.CreateEnterpriseContact(&contact)
	assert.Nil(t, err)
	assert.NotEqual(t, int64(0), contact.Created)
}
