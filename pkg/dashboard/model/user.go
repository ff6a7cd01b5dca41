package model

const (
	// ProviderGithub and ProviderGoogle are the identity providers a user
	// can sign in with and link to their account.
	ProviderGithub = "github.com"
	ProviderGoogle = "google.com"
)

// User is the user representation
type User struct {
	// ID for this user
	// required: true
	ID int64 `json:"-" meddler:"id,pk"`

	// Login is the unique identifier for this user
	// required: true
	Login string `json:"login" meddler:"login"`

	// Name is the full name for this user
	Name string `json:"name" meddler:"name"`

	Email string `json:"email" meddler:"email"`

	EmailVerified bool `json:"emailVerified" meddler:"email_verified"`

	AvatarURL string `json:"avatarUrl" meddler:"avatar_url"`

	// Providers holds the identity providers linked to this user
	Providers []string `json:"providers" meddler:"providers,json"`

	// Created is the account creation date
	Created int64 `json:"created" meddler:"created"`

	// LastSignIn is the date of the last confirmed sign-in
	LastSignIn int64 `json:"lastSignIn" meddler:"last_sign_in"`

	// Secret used to sign JWT session and CSRF tokens
	Secret string `json:"-" meddler:"secret"`

	// AccessToken is the linked Github oauth token
	AccessToken string `json:"-" meddler:"access_token,encrypted"`

	// GithubLogin is the username on Github the token belongs to
	GithubLogin string `json:"githubLogin" meddler:"github_login"`

	// PinnedRepos holds the Github repository ids the user pinned
	PinnedRepos []int64 `json:"pinnedRepos" meddler:"pinned_repos,json"`
}

// HasProvider tells if the given identity provider is linked to the user
func (u *User) HasProvider(provider string) bool {
	for _, p := range u.Providers {
		if p == provider {
			return true
		}
	}
	return false
}
