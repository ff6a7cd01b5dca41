package server

import (
	"encoding/json"
	"net/http"

	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/api"
	"github.com/simantic-io/simantic/pkg/dashboard/browse"
	"github.com/simantic-io/simantic/pkg/dashboard/git/customScm"
	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/sirupsen/logrus"
)

// gitRepos lists the user's hundred most recently updated repos,
// partitioned by the marker file
func gitRepos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	config := ctx.Value("config").(*config.Config)
	gitService := ctx.Value("gitService").(customScm.CustomGitService)

	if user.AccessToken == "" {
		http.Error(w, "Github account is not linked.", 400)
		return
	}

	repos, err := gitService.UserRepos(user.AccessToken)
	if err != nil {
		logrus.Errorf("cannot list repos: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	// the code search is best effort, a failed search classifies
	// every repo as not yet configured
	markerRepos, err := gitService.MarkerRepos(user.AccessToken, user.GithubLogin, config.MarkerFile)
	if err != nil {
		logrus.Warnf("cannot search for %s: %s", config.MarkerFile, err)
		markerRepos = map[string]bool{}
	}

	configured, other := browse.Classify(repos, markerRepos)
	classified := api.ClassifiedRepos{
		Configured: configured,
		Other:      other,
		Pinned:     browse.Pinned(repos, user.PinnedRepos),
		PinnedIDs:  user.PinnedRepos,
	}

	reposString, err := json.Marshal(classified)
	if err != nil {
		logrus.Errorf("cannot serialize repos: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(200)
	w.Write(reposString)
}

func togglePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		RepoID int64 `json:"repoId"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil || payload.RepoID == 0 {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	pinnedIDs := browse.TogglePin(user.PinnedRepos, payload.RepoID)
	err = dao.UpdateUserPins(user.Login, pinnedIDs)
	if err != nil {
		logrus.Errorf("cannot save pins: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	user.PinnedRepos = pinnedIDs

	notifyPinsUpdated(ctx, user.Login, pinnedIDs)

	response, _ := json.Marshal(map[string]interface{}{
		"pinnedIds": pinnedIDs,
	})
	w.WriteHeader(200)
	w.Write(response)
}
