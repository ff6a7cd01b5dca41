package store

import (
	"testing"
	"time"

	"github.com/simantic-io/simantic/pkg/dashboard/model"

	"github.com/stretchr/testify/assert"
)

func TestAcceptedUsers(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	accepted, err := s.IsAccepted("aLogin")
	assert.Nil(t, err)
	assert.False(t, accepted)

	err = s.AcceptUser(&model.AcceptedUser{Login: "aLogin", Accepted: time.Now().Unix()})
	assert.Nil(t, err)

	accepted, err = s.IsAccepted("aLogin")
	assert.Nil(t, err)
	assert.True(t, accepted)

	// accepting twice is a noop
	err = s.AcceptUser(&model.AcceptedUser{Login: "aLogin", Accepted: time.Now().Unix()})
	assert.Nil(t, err)

	err = s.RevokeAcceptance("aLogin")
	assert.Nil(t, err)

	accepted, err = s.IsAccepted("aLogin")
	assert.Nil(t, err)
	assert.False(t, accepted)
}
