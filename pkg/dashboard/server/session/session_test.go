package session

import (
	"testing"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/stretchr/testify/assert"
)

type countingChecker struct {
	calls    int
	accepted bool
	err      error
}

func (c *countingChecker) IsAccepted(login string) (bool, error) {
	c.calls++
	return c.accepted, c.err
}

func TestAccepted(t *testing.T) {
	checker := &countingChecker{accepted: true}

	assert.True(t, Accepted(checker, &model.User{Login: "alice"}))
	assert.Equal(t, 1, checker.calls)

	checker.accepted = false
	assert.False(t, Accepted(checker, &model.User{Login: "alice"}))
}

func TestAcceptedSkipsLookupWithoutUser(t *testing.T) {
	checker := &countingChecker{accepted: true}

	assert.False(t, Accepted(checker, nil))
	assert.False(t, Accepted(checker, &model.User{}))
	assert.Equal(t, 0, checker.calls)
}

func TestAcceptedFailsClosed(t *testing.T) {
	checker := &countingChecker{accepted: true, err: assert.AnError}

	assert.False(t, Accepted(checker, &model.User{Login: "alice"}))
}
