package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/stretchr/testify/assert"
)

func TestGithubOauthProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		assert.Equal(t, "my-client-id", r.Form.Get("client_id"))
		assert.Equal(t, "my-client-secret", r.Form.Get("client_secret"))
		assert.Equal(t, "abc123", r.Form.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "gho_token", "token_type": "bearer"}`))
	}))
	defer upstream.Close()

	req := httptest.NewRequest("POST", "/api/githubOauth", strings.NewReader(`{"code": "abc123"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), "config", &config.Config{
		Github: config.Github{
			ClientID:     "my-client-id",
			ClientSecret: "my-client-secret",
			TokenURL:     upstream.URL,
		},
	}))

	w := httptest.NewRecorder()
	githubOauthProxy(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"access_token":"gho_token"}`, w.Body.String())
}

func TestGithubOauthProxyMissingCode(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/githubOauth", strings.NewReader(""))
	req = req.WithContext(context.WithValue(req.Context(), "config", &config.Config{}))

	w := httptest.NewRecorder()
	githubOauthProxy(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Code is required")
}

func TestGithubOauthProxyUnconfigured(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/githubOauth", strings.NewReader("code=abc123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(context.WithValue(req.Context(), "config", &config.Config{}))

	w := httptest.NewRecorder()
	githubOauthProxy(w, req)

	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "GitHub credentials not configured")
}

func TestGithubOauthProxyUpstreamDown(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/githubOauth", strings.NewReader("code=abc123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(context.WithValue(req.Context(), "config", &config.Config{
		Github: config.Github{
			ClientID:     "my-client-id",
			ClientSecret: "my-client-secret",
			TokenURL:     "http://127.0.0.1:1/token",
		},
	}))

	w := httptest.NewRecorder()
	githubOauthProxy(w, req)

	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestGithubOauthProxyMapsProviderErrors(t *testing.T) {
	// Github signals a bad code with a 200 and an error body
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "bad_verification_code"}`))
	}))
	defer upstream.Close()

	req := httptest.NewRequest("POST", "/api/githubOauth", strings.NewReader("code=expired"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(context.WithValue(req.Context(), "config", &config.Config{
		Github: config.Github{
			ClientID:     "my-client-id",
			ClientSecret: "my-client-secret",
			TokenURL:     upstream.URL,
		},
	}))

	w := httptest.NewRecorder()
	githubOauthProxy(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to get access token")
	assert.Contains(t, w.Body.String(), "bad_verification_code")
}
