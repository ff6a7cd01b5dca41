package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/api"
	"github.com/simantic-io/simantic/pkg/dashboard/browse"
	"github.com/simantic-io/simantic/pkg/dashboard/git/customScm"
	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/sirupsen/logrus"
)

func branches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	gitService := ctx.Value("gitService").(customScm.CustomGitService)

	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	branches, err := gitService.Branches(user.AccessToken, owner, name)
	if err != nil {
		logrus.Errorf("cannot list branches: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	branchesString, err := json.Marshal(branches)
	if err != nil {
		logrus.Errorf("cannot serialize branches: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(200)
	w.Write(branchesString)
}

func commits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	gitService := ctx.Value("gitService").(customScm.CustomGitService)

	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")
	branch := r.URL.Query().Get("branch")

	commits, err := gitService.Commits(user.AccessToken, owner, name, branch)
	if err != nil {
		logrus.Errorf("cannot list commits: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	commitsString, err := json.Marshal(commits)
	if err != nil {
		logrus.Errorf("cannot serialize commits: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(200)
	w.Write(commitsString)
}

// browseRepo serves one step of the repository explorer. The path is
// the route's, Github decides whether it is a file or a directory and
// the response carries exactly one of the two. A deep link whose path
// no longer resolves falls back to the parent listing.
func browseRepo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	config := ctx.Value("config").(*config.Config)
	gitService := ctx.Value("gitService").(customScm.CustomGitService)

	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")
	branch := r.URL.Query().Get("branch")
	intent := browse.FromRoute(owner, name, r.URL.Query().Get("path"))

	path := intent.Path
	entries, file, err := gitService.Contents(user.AccessToken, owner, name, path, branch)
	if err != nil && intent.Path != intent.ListingPath {
		logrus.Warnf("cannot fetch %s %s: %s", intent.Repo, path, err)
		path = intent.ListingPath
		entries, file, err = gitService.Contents(user.AccessToken, owner, name, path, branch)
	}
	if err != nil {
		logrus.Warnf("cannot fetch %s %s: %s", intent.Repo, path, err)
		http.Error(w, http.StatusText(404), 404)
		return
	}
	browse.SortEntries(entries)

	result := api.BrowseResult{
		Repo:         intent.Repo,
		Path:         path,
		PathSegments: browse.PathSegments(path),
		Entries:      entries,
		File:         file,
		Configured:   gitService.HasMarkerFile(user.AccessToken, owner, name, config.MarkerFile),
	}

	resultString, err := json.Marshal(result)
	if err != nil {
		logrus.Errorf("cannot serialize contents: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(200)
	w.Write(resultString)
}
