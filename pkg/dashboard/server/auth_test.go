package server

import (
	"testing"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/stretchr/testify/assert"
)

func Test_getOrCreateUser(t *testing.T) {
	dao := store.NewTest()

	user, err := getOrCreateUser(dao, signInProfile{
		Login:         "alice",
		Name:          "Alice",
		Email:         "alice@example.com",
		EmailVerified: true,
	}, model.ProviderGithub)
	assert.Nil(t, err)
	assert.Equal(t, []string{model.ProviderGithub}, user.Providers)
	assert.NotEqual(t, "", user.Secret)

	again, err := getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Name:  "Alice Renamed",
		Email: "alice@example.com",
	}, model.ProviderGithub)
	assert.Nil(t, err)
	assert.Equal(t, user.Login, again.Login)
	assert.Equal(t, "Alice Renamed", again.Name)
}

func Test_getOrCreateUserRefusesOtherProvider(t *testing.T) {
	dao := store.NewTest()

	_, err := getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Email: "alice@example.com",
	}, model.ProviderGithub)
	assert.Nil(t, err)

	_, err = getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Email: "alice@example.com",
	}, model.ProviderGoogle)
	assert.Equal(t, errAccountExists, err)
}

func Test_linkProvider(t *testing.T) {
	dao := store.NewTest()

	user, err := getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Email: "alice@example.com",
	}, model.ProviderGithub)
	assert.Nil(t, err)

	err = linkProvider(dao, user, model.ProviderGoogle)
	assert.Nil(t, err)
	assert.True(t, user.HasProvider(model.ProviderGoogle))

	// once linked, google sign-in resolves to the same account
	again, err := getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Email: "alice@example.com",
	}, model.ProviderGoogle)
	assert.Nil(t, err)
	assert.Equal(t, user.Login, again.Login)

	err = linkProvider(dao, user, model.ProviderGoogle)
	assert.NotNil(t, err, "should refuse linking a linked provider twice")
}

func Test_ensureGithubCredentialFree(t *testing.T) {
	dao := store.NewTest()

	alice, err := getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Email: "alice@example.com",
	}, model.ProviderGithub)
	assert.Nil(t, err)
	err = dao.UpdateUserToken(alice.Login, "gho_token", "alice-gh")
	assert.Nil(t, err)

	bob, err := getOrCreateUser(dao, signInProfile{
		Login: "bob",
		Email: "bob@example.com",
	}, model.ProviderGoogle)
	assert.Nil(t, err)

	err = ensureGithubCredentialFree(dao, bob, "alice-gh")
	assert.Equal(t, errGithubCredentialBound, err)

	// relinking your own credential is fine
	assert.Nil(t, ensureGithubCredentialFree(dao, alice, "alice-gh"))
	assert.Nil(t, ensureGithubCredentialFree(dao, bob, "bob-gh"))
}

func Test_ensureGoogleCredentialFree(t *testing.T) {
	dao := store.NewTest()

	_, err := getOrCreateUser(dao, signInProfile{
		Login: "alice",
		Email: "alice@example.com",
	}, model.ProviderGoogle)
	assert.Nil(t, err)

	bob, err := getOrCreateUser(dao, signInProfile{
		Login: "bob",
		Email: "bob@example.com",
	}, model.ProviderGithub)
	assert.Nil(t, err)

	err = ensureGoogleCredentialFree(dao, bob, "alice@example.com")
	assert.Equal(t, errGoogleCredentialBound, err)
	assert.Nil(t, ensureGoogleCredentialFree(dao, bob, "bob@example.com"))
}

func Test_loginFromEmail(t *testing.T) {
	assert.Equal(t, "alice", loginFromEmail("alice@example.com"))
	assert.Equal(t, "alice.b-smith", loginFromEmail("Alice.B_Smith@example.com"))
	assert.Equal(t, "no-at-sign", loginFromEmail("no-at-sign"))
}
