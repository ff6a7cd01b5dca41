package server

import (
	"context"
	"database/sql"
	"encoding/base32"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/laszlocph/go-login/login"
	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/git/genericScm"
	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/server/httputil"
	"github.com/simantic-io/simantic/pkg/dashboard/server/streaming"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/simantic-io/simantic/pkg/server/token"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const accountExistsMessage = "An account already exists with this email address using a different sign-in provider. Sign in with that provider, then link this one from the dashboard."

// auth is the Github sign-in callback. When a session is already set
// it links Github to the signed-in account instead.
func auth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := login.ErrorFrom(ctx)
	if err != nil {
		log.Errorf("cannot get access token: %s", err)
		http.Error(w, "Cannot decode token", 400)
		return
	}
	loginToken := login.TokenFrom(ctx)

	config := ctx.Value("config").(*config.Config)
	goScmHelper := genericScm.NewGoScmHelper(config.Github.Debug)
	scmUser, err := goScmHelper.User(loginToken.Access)
	if err != nil {
		log.Errorf("cannot find git user: %s", err)
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	dao := ctx.Value("store").(*store.Store)

	if currentUser, linking := ctx.Value("user").(*model.User); linking {
		err = ensureGithubCredentialFree(dao, currentUser, scmUser.Login)
		if err == errGithubCredentialBound {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			log.Errorf("cannot check credential owner: %s", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}

		err = linkProvider(dao, currentUser, model.ProviderGithub)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}

		err = dao.UpdateUserToken(currentUser.Login, loginToken.Access, scmUser.Login)
		if err != nil {
			log.Errorf("cannot store access token: %s", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}

		notifyProviderChange(ctx, currentUser.Login, model.ProviderGithub, streaming.ProviderLinkedEventString)
		http.Redirect(w, r, "/account", http.StatusSeeOther)
		return
	}

	user, err := getOrCreateUser(dao, signInProfile{
		Login:         scmUser.Login,
		Name:          scmUser.Name,
		Email:         strings.ToLower(scmUser.Email),
		EmailVerified: true,
		AvatarURL:     scmUser.Avatar,
	}, model.ProviderGithub)
	if err == errAccountExists {
		http.Error(w, accountExistsMessage, http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("cannot get or store user: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	err = dao.UpdateUserToken(user.Login, loginToken.Access, scmUser.Login)
	if err != nil {
		log.Errorf("cannot store access token: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	err = setSessionCookie(w, r, user)
	if err != nil {
		log.Errorf("cannot set session cookie: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	notifySignedIn(ctx, user)
	http.RedirectHandler("/dashboard", http.StatusSeeOther).ServeHTTP(w, r)
}

func googleOauthConfig(config *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.Google.ClientID,
		ClientSecret: config.Google.ClientSecret,
		RedirectURL:  config.Host + "/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func googleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	config := ctx.Value("config").(*config.Config)
	if !config.GoogleEnabled() {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	state := base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(16))
	httputil.SetCookie(w, r, "oauth_state", state)

	http.Redirect(w, r, googleOauthConfig(config).AuthCodeURL(state), http.StatusSeeOther)
}

func googleAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	config := ctx.Value("config").(*config.Config)

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.FormValue("state") {
		http.Error(w, "Invalid state", 400)
		return
	}
	httputil.DelCookie(w, r, "oauth_state")

	oauthToken, err := googleOauthConfig(config).Exchange(ctx, r.FormValue("code"))
	if err != nil {
		log.Errorf("cannot get access token: %s", err)
		http.Error(w, "Cannot decode token", 400)
		return
	}

	profile, err := googleProfile(ctx, config, oauthToken)
	if err != nil {
		log.Errorf("cannot fetch google profile: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	dao := ctx.Value("store").(*store.Store)

	if currentUser, linking := ctx.Value("user").(*model.User); linking {
		err = ensureGoogleCredentialFree(dao, currentUser, profile.Email)
		if err == errGoogleCredentialBound {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			log.Errorf("cannot check credential owner: %s", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}

		err = linkProvider(dao, currentUser, model.ProviderGoogle)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}

		notifyProviderChange(ctx, currentUser.Login, model.ProviderGoogle, streaming.ProviderLinkedEventString)
		http.Redirect(w, r, "/account", http.StatusSeeOther)
		return
	}

	user, err := getOrCreateUser(dao, *profile, model.ProviderGoogle)
	if err == errAccountExists {
		http.Error(w, accountExistsMessage, http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("cannot get or store user: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	err = setSessionCookie(w, r, user)
	if err != nil {
		log.Errorf("cannot set session cookie: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	notifySignedIn(ctx, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func googleProfile(ctx context.Context, config *config.Config, oauthToken *oauth2.Token) (*signInProfile, error) {
	client := googleOauthConfig(config).Client(ctx, oauthToken)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	err = json.Unmarshal(body, &userInfo)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(userInfo.Email)
	return &signInProfile{
		Login:         loginFromEmail(email),
		Name:          userInfo.Name,
		Email:         email,
		EmailVerified: userInfo.VerifiedEmail,
		AvatarURL:     userInfo.Picture,
	}, nil
}

type signInProfile struct {
	Login         string
	Name          string
	Email         string
	EmailVerified bool
	AvatarURL     string
}

var errAccountExists = errorString(accountExistsMessage)

var errGithubCredentialBound = errorString("This Github account is already linked to another user.")
var errGoogleCredentialBound = errorString("This Google account is already linked to another user.")

type errorString string

func (e errorString) Error() string { return string(e) }

// ensureGithubCredentialFree refuses a Github account that is already
// linked to a different user
func ensureGithubCredentialFree(dao *store.Store, user *model.User, githubLogin string) error {
	existing, err := dao.UserByGithubLogin(githubLogin)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.Login != user.Login {
		return errGithubCredentialBound
	}
	return nil
}

// ensureGoogleCredentialFree refuses a Google account whose email
// already identifies a different user
func ensureGoogleCredentialFree(dao *store.Store, user *model.User, email string) error {
	existing, err := dao.UserByEmail(email)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.Login != user.Login {
		return errGoogleCredentialBound
	}
	return nil
}

func getOrCreateUser(dao *store.Store, profile signInProfile, provider string) (*model.User, error) {
	user, err := dao.UserByEmail(profile.Email)
	if err == sql.ErrNoRows {
		user = &model.User{
			Login:         profile.Login,
			Name:          profile.Name,
			Email:         profile.Email,
			EmailVerified: profile.EmailVerified,
			AvatarURL:     profile.AvatarURL,
			Providers:     []string{provider},
			Created:       time.Now().Unix(),
			LastSignIn:    time.Now().Unix(),
			Secret: base32.StdEncoding.EncodeToString(
				securecookie.GenerateRandomKey(32),
			),
			PinnedRepos: []int64{},
		}
		err = dao.CreateUser(user)
		if err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	if !user.HasProvider(provider) {
		return nil, errAccountExists
	}

	user.Name = profile.Name
	user.AvatarURL = profile.AvatarURL
	user.LastSignIn = time.Now().Unix()
	err = dao.UpdateUser(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// loginFromEmail derives a login for accounts created with a
// non-Github provider
func loginFromEmail(email string) string {
	login := email
	if idx := strings.Index(email, "@"); idx != -1 {
		login = email[:idx]
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '.' {
			return r
		}
		return '-'
	}, strings.ToLower(login))
}

func linkProvider(dao *store.Store, user *model.User, provider string) error {
	if user.HasProvider(provider) {
		return errorString("Provider is already linked to this account.")
	}

	user.Providers = append(user.Providers, provider)
	return dao.UpdateUser(user)
}

func unlinkProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		Provider string `json:"provider"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	if !user.HasProvider(payload.Provider) {
		http.Error(w, "Provider is not linked to this account.", 400)
		return
	}
	if len(user.Providers) == 1 {
		http.Error(w, "Cannot unlink the only sign-in provider.", 400)
		return
	}

	remaining := []string{}
	for _, p := range user.Providers {
		if p != payload.Provider {
			remaining = append(remaining, p)
		}
	}
	user.Providers = remaining

	err = dao.UpdateUser(user)
	if err != nil {
		log.Errorf("cannot update user: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	if payload.Provider == model.ProviderGithub {
		err = dao.UpdateUserToken(user.Login, "", "")
		if err != nil {
			log.Errorf("cannot clear access token: %s", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}
	}

	notifyProviderChange(ctx, user.Login, payload.Provider, streaming.ProviderUnlinkedEventString)

	w.WriteHeader(200)
	w.Write([]byte("{}"))
}

// linkGithub stores a Github access token on the signed-in account.
// The ui obtains the code, the exchange happens server side so the
// client secret stays here.
func linkGithub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	config := ctx.Value("config").(*config.Config)
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		Code string `json:"code"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil || payload.Code == "" {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	accessToken, err := exchangeGithubCode(config, payload.Code)
	if err != nil {
		log.Errorf("cannot exchange authorization code: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	goScmHelper := genericScm.NewGoScmHelper(config.Github.Debug)
	scmUser, err := goScmHelper.User(accessToken)
	if err != nil {
		log.Errorf("cannot find git user: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	err = ensureGithubCredentialFree(dao, user, scmUser.Login)
	if err == errGithubCredentialBound {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("cannot check credential owner: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	err = dao.UpdateUserToken(user.Login, accessToken, scmUser.Login)
	if err != nil {
		log.Errorf("cannot store access token: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	if !user.HasProvider(model.ProviderGithub) {
		err = linkProvider(dao, user, model.ProviderGithub)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
	}

	notifyProviderChange(ctx, user.Login, model.ProviderGithub, streaming.GithubTokenLinkedEventString)

	response, _ := json.Marshal(map[string]interface{}{
		"githubLogin": scmUser.Login,
	})
	w.WriteHeader(200)
	w.Write(response)
}

func exchangeGithubCode(config *config.Config, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", config.Github.ClientID)
	form.Set("client_secret", config.Github.ClientSecret)
	form.Set("code", code)

	req, err := http.NewRequest("POST", config.Github.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	err = json.NewDecoder(resp.Body).Decode(&tokenResponse)
	if err != nil {
		return "", err
	}
	if tokenResponse.AccessToken == "" {
		return "", errorString("github did not return a token: " + tokenResponse.Error)
	}

	return tokenResponse.AccessToken, nil
}

func logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if user, userSet := ctx.Value("user").(*model.User); userSet {
		notifySignedOut(ctx, user)
	}

	httputil.DelCookie(w, r, "user_sess")
	http.RedirectHandler("/login", http.StatusSeeOther).ServeHTTP(w, r)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, user *model.User) error {
	fortyEightHours, _ := time.ParseDuration("48h")
	exp := time.Now().Add(fortyEightHours).Unix()
	t := token.New(token.SessToken, user.Login)
	tokenStr, err := t.SignExpires(user.Secret, exp)
	if err != nil {
		return err
	}

	httputil.SetCookie(w, r, "user_sess", tokenStr)
	return nil
}
