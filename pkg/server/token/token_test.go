package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_SignAndParse(t *testing.T) {
	tkn := New(UserToken, "aLogin")
	signed, err := tkn.Sign("secret")
	assert.Nil(t, err)

	parsed, err := Parse(signed, func(*Token) (string, error) {
		return "secret", nil
	})
	assert.Nil(t, err)
	assert.Equal(t, UserToken, parsed.Kind)
	assert.Equal(t, "aLogin", parsed.Subject)

	_, err = Parse(signed, func(*Token) (string, error) {
		return "wrongSecret", nil
	})
	assert.NotNil(t, err)
}

func Test_SessTokenExpiry(t *testing.T) {
	tkn := New(SessToken, "aLogin")
	signed, err := tkn.SignExpires("secret", time.Now().Add(-time.Hour).Unix())
	assert.Nil(t, err)

	_, err = Parse(signed, func(*Token) (string, error) {
		return "secret", nil
	})
	assert.NotNil(t, err)
}

func Test_ParseRequest(t *testing.T) {
	signed, _ := New(UserToken, "aLogin").Sign("secret")

	r, _ := http.NewRequest("GET", "/api/user", nil)
	r.Header.Set("Authorization", "Bearer "+signed)

	parsed, err := ParseRequest(r, func(*Token) (string, error) {
		return "secret", nil
	})
	assert.Nil(t, err)
	assert.Equal(t, "aLogin", parsed.Subject)

	r, _ = http.NewRequest("GET", "/api/user", nil)
	r.AddCookie(&http.Cookie{Name: "user_sess", Value: signed})

	parsed, err = ParseRequest(r, func(*Token) (string, error) {
		return "secret", nil
	})
	assert.Nil(t, err)
	assert.Equal(t, "aLogin", parsed.Subject)
}
