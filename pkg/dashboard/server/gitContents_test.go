package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/api"
	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/stretchr/testify/assert"
)

type browsableGitService struct {
	fakeGitService
	entries  []*api.DirEntry
	file     *api.FileContent
	failPath string
}

func (f *browsableGitService) Contents(token string, owner string, name string, path string, branch string) ([]*api.DirEntry, *api.FileContent, error) {
	if f.failPath != "" && path == f.failPath {
		return nil, nil, errors.New("not found")
	}
	return f.entries, f.file, nil
}

func browseRequest(gitService *browsableGitService, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("owner", "acme")
	routeCtx.URLParams.Add("name", "widgets")

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, "user", &model.User{Login: "alice", AccessToken: "gho_token"})
	ctx = context.WithValue(ctx, "config", &config.Config{MarkerFile: "simantic.yaml"})
	ctx = context.WithValue(ctx, "gitService", gitService)
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	browseRepo(w, req)
	return w
}

func Test_browseRepoListing(t *testing.T) {
	gitService := &browsableGitService{
		fakeGitService: fakeGitService{markerRepos: map[string]bool{"acme/widgets": true}},
		entries: []*api.DirEntry{
			{Name: "main.c", Path: "src/main.c", Type: "file"},
			{Name: "lib", Path: "src/lib", Type: "dir"},
		},
	}

	w := browseRequest(gitService, "/api/repo/acme/widgets/contents?path=src")
	assert.Equal(t, 200, w.Code)

	var result api.BrowseResult
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Nil(t, result.File)
	assert.Equal(t, 2, len(result.Entries))
	assert.Equal(t, "lib", result.Entries[0].Name, "directories come before files")
	assert.True(t, result.Configured)
}

func Test_browseRepoFile(t *testing.T) {
	gitService := &browsableGitService{
		file: &api.FileContent{Path: "src/main.c", Content: "int main() {}"},
	}

	w := browseRequest(gitService, "/api/repo/acme/widgets/contents?path=src/main.c")
	assert.Equal(t, 200, w.Code)

	var result api.BrowseResult
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Nil(t, result.Entries)
	assert.Equal(t, "int main() {}", result.File.Content)
	assert.Equal(t, []string{"src", "main.c"}, result.PathSegments)
	assert.False(t, result.Configured)
}

func Test_browseRepoDeadDeepLink(t *testing.T) {
	// a deep link to a path that no longer resolves falls back to the
	// parent listing
	gitService := &browsableGitService{
		entries: []*api.DirEntry{
			{Name: "lib", Path: "src/lib", Type: "dir"},
		},
		failPath: "src/main.c",
	}

	w := browseRequest(gitService, "/api/repo/acme/widgets/contents?path=src/main.c")
	assert.Equal(t, 200, w.Code)

	var result api.BrowseResult
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Nil(t, result.File)
	assert.Equal(t, "src", result.Path)
	assert.Equal(t, 1, len(result.Entries))
}
