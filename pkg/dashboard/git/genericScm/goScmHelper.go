package genericScm

import (
	"context"
	"net/http"
	"net/http/httputil"

	"github.com/gimlet-io/go-scm/scm"
	"github.com/gimlet-io/go-scm/scm/driver/github"
	"github.com/gimlet-io/go-scm/scm/transport/oauth2"
	"github.com/sirupsen/logrus"
)

// GoScmHelper wraps the go-scm client for the identity calls the
// sign-in flows make
type GoScmHelper struct {
	client *scm.Client
}

func NewGoScmHelper(debug bool) *GoScmHelper {
	client, err := github.New("https://api.github.com")
	if err != nil {
		logrus.WithError(err).
			Fatalln("main: cannot create the GitHub client")
	}
	if debug {
		client.DumpResponse = httputil.DumpResponse
	}

	client.Client = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ContextTokenSource(),
		},
	}

	return &GoScmHelper{
		client: client,
	}
}

// User fetches the Github profile the token belongs to
func (helper *GoScmHelper) User(accessToken string) (*scm.User, error) {
	ctx := context.WithValue(context.Background(), scm.TokenKey{}, &scm.Token{
		Token: accessToken,
	})
	user, _, err := helper.client.Users.Find(ctx)
	return user, err
}
