package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/api"
	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/stretchr/testify/assert"
)

func reposContext(dao *store.Store, user *model.User) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, "store", dao)
	ctx = context.WithValue(ctx, "user", user)
	ctx = context.WithValue(ctx, "config", &config.Config{MarkerFile: "simantic.yaml"})
	ctx = context.WithValue(ctx, "gitService", &fakeGitService{
		repos: []*api.Repo{
			{ID: 1, FullName: "acme/widgets"},
			{ID: 2, FullName: "acme/gadgets"},
			{ID: 3, FullName: "acme/docs"},
		},
		markerRepos: map[string]bool{"acme/widgets": true},
	})
	return ctx
}

func Test_gitRepos(t *testing.T) {
	dao := store.NewTest()
	user := &model.User{
		Login:       "alice",
		GithubLogin: "alice",
		AccessToken: "gho_token",
		PinnedRepos: []int64{2},
	}
	assert.Nil(t, dao.CreateUser(user))

	req := httptest.NewRequest("GET", "/api/gitRepos", nil)
	w := httptest.NewRecorder()
	req = req.WithContext(reposContext(dao, user))

	gitRepos(w, req)
	assert.Equal(t, 200, w.Code)

	var classified api.ClassifiedRepos
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &classified))
	assert.Equal(t, 1, len(classified.Configured))
	assert.Equal(t, "acme/widgets", classified.Configured[0].FullName)
	assert.Equal(t, 2, len(classified.Other))
	assert.Equal(t, 1, len(classified.Pinned))
	assert.Equal(t, "acme/gadgets", classified.Pinned[0].FullName)
}

func Test_gitReposWithoutLinkedGithub(t *testing.T) {
	dao := store.NewTest()
	user := &model.User{Login: "alice"}
	assert.Nil(t, dao.CreateUser(user))

	req := httptest.NewRequest("GET", "/api/gitRepos", nil)
	w := httptest.NewRecorder()
	req = req.WithContext(reposContext(dao, user))

	gitRepos(w, req)
	assert.Equal(t, 400, w.Code)
}

func Test_togglePin(t *testing.T) {
	dao := store.NewTest()
	user := &model.User{Login: "alice", PinnedRepos: []int64{1}}
	assert.Nil(t, dao.CreateUser(user))

	req := httptest.NewRequest("POST", "/api/togglePin", strings.NewReader(`{"repoId": 2}`))
	w := httptest.NewRecorder()
	req = req.WithContext(reposContext(dao, user))

	togglePin(w, req)
	assert.Equal(t, 200, w.Code)

	stored, err := dao.User("alice")
	assert.Nil(t, err)
	assert.Equal(t, []int64{1, 2}, stored.PinnedRepos)

	// toggling again unpins
	req = httptest.NewRequest("POST", "/api/togglePin", strings.NewReader(`{"repoId": 2}`))
	w = httptest.NewRecorder()
	req = req.WithContext(reposContext(dao, user))

	togglePin(w, req)
	assert.Equal(t, 200, w.Code)

	stored, err = dao.User("alice")
	assert.Nil(t, err)
	assert.Equal(t, []int64{1}, stored.PinnedRepos)
}
