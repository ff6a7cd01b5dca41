package store

import (
	"testing"

	"github.com/simantic-io/simantic/pkg/dashboard/model"

	"github.com/stretchr/testify/assert"
)

func TestUserCRUD(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	user := model.User{
		Login:         "aLogin",
		Name:          "A User",
		Email:         "a@simantic.io",
		EmailVerified: true,
		AvatarURL:     "https://avatars.githubusercontent.com/u/1",
		Providers:     []string{model.ProviderGithub},
		AccessToken:   "aGithubToken",
		GithubLogin:   "aGithubLogin",
		PinnedRepos:   []int64{1, 2},
	}

	err := s.CreateUser(&user)
	assert.Nil(t, err)

	_, err = s.User("noSuchLogin")
	assert.NotNil(t, err)

	u, err := s.User("aLogin")
	assert.Nil(t, err)
	assert.Equal(t, user.Login, u.Login)
	assert.Equal(t, user.Email, u.Email)
	assert.Equal(t, user.EmailVerified, u.EmailVerified)
	assert.Equal(t, user.Providers, u.Providers)
	assert.Equal(t, user.AccessToken, u.AccessToken)
	assert.Equal(t, user.GithubLogin, u.GithubLogin)
	assert.Equal(t, user.PinnedRepos, u.PinnedRepos)

	u, err = s.UserByEmail("a@simantic.io")
	assert.Nil(t, err)
	assert.Equal(t, user.Login, u.Login)

	users, err := s.Users()
	assert.Nil(t, err)
	assert.Equal(t, 1, len(users))

	err = s.DeleteUser("aLogin")
	assert.Nil(t, err)

	users, err = s.Users()
	assert.Nil(t, err)
	assert.Equal(t, 0, len(users))
}

func TestUpdateUserToken(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	err := s.CreateUser(&model.User{
		Login:       "aLogin",
		Providers:   []string{model.ProviderGithub},
		PinnedRepos: []int64{42},
	})
	assert.Nil(t, err)

	err = s.UpdateUserToken("aLogin", "aToken", "aGithubLogin")
	assert.Nil(t, err)

	u, err := s.User("aLogin")
	assert.Nil(t, err)
	assert.Equal(t, "aToken", u.AccessToken)
	assert.Equal(t, "aGithubLogin", u.GithubLogin)
	// merge-write: unrelated fields are untouched
	assert.Equal(t, []int64{42}, u.PinnedRepos)
	assert.Equal(t, []string{model.ProviderGithub}, u.Providers)
}

func TestUpdateUserPins(t *testing.T) {
	s := NewTest()
	defer func() {
		s.Close()
	}()

	err := s.CreateUser(&model.User{
		Login:       "aLogin",
		AccessToken: "aToken",
	})
	assert.Nil(t, err)

	err = s.UpdateUserPins("aLogin", []int64{3, 1, 2})
	assert.Nil(t, err)

	u, err := s.User("aLogin")
	assert.Nil(t, err)
	assert.Equal(t, []int64{3, 1, 2}, u.PinnedRepos)
	assert.Equal(t, "aToken", u.AccessToken)

	err = s.UpdateUserPins("aLogin", nil)
	assert.Nil(t, err)

	u, err = s.User("aLogin")
	assert.Nil(t, err)
	assert.Equal(t, []int64{}, u.PinnedRepos)
}
