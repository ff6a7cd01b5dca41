package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/simantic-io/simantic/cmd/dashboard/config"
	log "github.com/sirupsen/logrus"
)

// githubOauthProxy exchanges an authorization code for a Github
// access token. The client secret never leaves the server, the
// browser only sees the code and the mapped outcome.
func githubOauthProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	config := ctx.Value("config").(*config.Config)

	code := exchangeCode(r)
	if code == "" {
		writeProxyJSON(w, 400, map[string]string{"error": "Code is required"})
		return
	}

	if config.Github.ClientID == "" || config.Github.ClientSecret == "" {
		log.Errorf("github client credentials are not configured")
		writeProxyJSON(w, 500, map[string]string{"error": "GitHub credentials not configured"})
		return
	}

	form := url.Values{}
	form.Set("client_id", config.Github.ClientID)
	form.Set("client_secret", config.Github.ClientSecret)
	form.Set("code", code)

	req, err := http.NewRequest("POST", config.Github.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		log.Errorf("cannot build token request: %s", err)
		writeProxyJSON(w, 500, map[string]string{"error": "Internal server error"})
		return
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Errorf("cannot exchange authorization code: %s", err)
		writeProxyJSON(w, 500, map[string]string{"error": "Internal server error"})
		return
	}
	defer resp.Body.Close()

	// Github answers a bad code with 200 and an error body, the
	// outcome hinges on the access_token field
	var tokenData struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	err = json.NewDecoder(resp.Body).Decode(&tokenData)
	if err != nil {
		log.Errorf("cannot read token response: %s", err)
		writeProxyJSON(w, 500, map[string]string{"error": "Internal server error"})
		return
	}

	if tokenData.AccessToken == "" {
		writeProxyJSON(w, 400, map[string]string{
			"error":   "Failed to get access token",
			"details": tokenData.Error,
		})
		return
	}

	writeProxyJSON(w, 200, map[string]string{"access_token": tokenData.AccessToken})
}

func writeProxyJSON(w http.ResponseWriter, status int, payload map[string]string) {
	body, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// exchangeCode accepts the code as a json body, a form field or a
// query parameter
func exchangeCode(r *http.Request) string {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			Code string `json:"code"`
		}
		err := json.NewDecoder(r.Body).Decode(&payload)
		if err == nil && payload.Code != "" {
			return payload.Code
		}
		return ""
	}

	r.ParseForm()
	return r.Form.Get("code")
}
