package customScm

import (
	"github.com/simantic-io/simantic/pkg/dashboard/api"
	"github.com/simantic-io/simantic/pkg/dashboard/git/customScm/customGithub"
)

type CustomGitService interface {
	UserRepos(token string) ([]*api.Repo, error)
	MarkerRepos(token string, login string, markerFile string) (map[string]bool, error)
	HasMarkerFile(token string, owner string, name string, markerFile string) bool
	Branches(token string, owner string, name string) ([]*api.Branch, error)
	Commits(token string, owner string, name string, branch string) ([]*api.Commit, error)
	Contents(token string, owner string, name string, path string, branch string) ([]*api.DirEntry, *api.FileContent, error)
}

func NewGitService() CustomGitService {
	return &customGithub.GithubClient{}
}
