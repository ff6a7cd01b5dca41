package server

import (
	"encoding/json"
	"net/http"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/server/session"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/simantic-io/simantic/pkg/server/token"
	"github.com/sirupsen/logrus"
)

// userProfile is the signed-in user as the dashboard sees it. Tokens
// and secrets stay server-side, only their presence is exposed.
type userProfile struct {
	Login         string   `json:"login"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	EmailVerified bool     `json:"emailVerified"`
	AvatarURL     string   `json:"avatarUrl"`
	Providers     []string `json:"providers"`
	Created       int64    `json:"created"`
	LastSignIn    int64    `json:"lastSignIn"`
	GithubLogin   string   `json:"githubLogin,omitempty"`
	GithubLinked  bool     `json:"githubLinked"`
	PinnedRepos   []int64  `json:"pinnedRepos"`
	Accepted      bool     `json:"accepted"`
	Token         string   `json:"token,omitempty"`
}

func user(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	dao := ctx.Value("store").(*store.Store)

	userToken := token.New(token.UserToken, user.Login)
	tokenStr, err := userToken.Sign(user.Secret)
	if err != nil {
		logrus.Errorf("cannot sign user token: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	profile := userProfile{
		Login:         user.Login,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		AvatarURL:     user.AvatarURL,
		Providers:     user.Providers,
		Created:       user.Created,
		LastSignIn:    user.LastSignIn,
		GithubLogin:   user.GithubLogin,
		GithubLinked:  user.AccessToken != "",
		PinnedRepos:   user.PinnedRepos,
		Accepted:      session.Accepted(dao, user),
		Token:         tokenStr,
	}

	profileString, err := json.Marshal(profile)
	if err != nil {
		logrus.Errorf("cannot serialize user: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(profileString)
}

// invoiceData backs the invoice page. Billing runs out of band during
// the beta, the page renders the account's own details.
func invoiceData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)

	invoiceString, err := json.Marshal(map[string]interface{}{
		"name":     user.Name,
		"email":    user.Email,
		"customer": user.Login,
		"since":    user.Created,
		"plan":     "beta",
		"invoices": []interface{}{},
	})
	if err != nil {
		logrus.Errorf("cannot serialize invoice data: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(invoiceString)
}
