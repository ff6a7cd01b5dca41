package customGithub

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v37/github"
	"github.com/simantic-io/simantic/pkg/dashboard/api"
	"golang.org/x/oauth2"
)

type GithubClient struct {
}

func githubClient(token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return github.NewClient(tc)
}

// UserRepos returns the user's hundred most recently updated repos
func (c *GithubClient) UserRepos(token string) ([]*api.Repo, error) {
	client := githubClient(token)

	repos, _, err := client.Repositories.List(context.Background(), "", &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, err
	}

	var userRepos []*api.Repo
	for _, r := range repos {
		userRepos = append(userRepos, translateRepo(r))
	}

	return userRepos, nil
}

// MarkerRepos searches the user's repos for the marker file and
// returns the full names of the hits
func (c *GithubClient) MarkerRepos(token string, login string, markerFile string) (map[string]bool, error) {
	client := githubClient(token)

	query := fmt.Sprintf("filename:%s user:%s", markerFile, login)
	result, _, err := client.Search.Code(context.Background(), query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, err
	}

	markerRepos := map[string]bool{}
	for _, hit := range result.CodeResults {
		if hit.Repository != nil {
			markerRepos[hit.Repository.GetFullName()] = true
		}
	}

	return markerRepos, nil
}

// HasMarkerFile probes a single repo for the marker file. Any
// non-success answer counts as absent.
func (c *GithubClient) HasMarkerFile(token string, owner string, name string, markerFile string) bool {
	client := githubClient(token)

	fileContent, _, _, err := client.Repositories.GetContents(
		context.Background(),
		owner,
		name,
		markerFile,
		&github.RepositoryContentGetOptions{},
	)

	return err == nil && fileContent != nil
}

func (c *GithubClient) Branches(token string, owner string, name string) ([]*api.Branch, error) {
	client := githubClient(token)

	repo, _, err := client.Repositories.Get(context.Background(), owner, name)
	if err != nil {
		return nil, err
	}
	defaultBranch := repo.GetDefaultBranch()

	branches, _, err := client.Repositories.ListBranches(context.Background(), owner, name, &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, err
	}

	var apiBranches []*api.Branch
	for _, b := range branches {
		apiBranches = append(apiBranches, &api.Branch{
			Name:    b.GetName(),
			Default: b.GetName() == defaultBranch,
		})
	}

	return apiBranches, nil
}

func (c *GithubClient) Commits(token string, owner string, name string, branch string) ([]*api.Commit, error) {
	client := githubClient(token)

	commits, _, err := client.Repositories.ListCommits(context.Background(), owner, name, &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: 30},
	})
	if err != nil {
		return nil, err
	}

	var apiCommits []*api.Commit
	for _, c := range commits {
		apiCommits = append(apiCommits, translateCommit(c))
	}

	return apiCommits, nil
}

// Contents fetches one path. Github answers with either a file or a
// directory listing, never both.
func (c *GithubClient) Contents(token string, owner string, name string, path string, branch string) ([]*api.DirEntry, *api.FileContent, error) {
	client := githubClient(token)

	fileContent, dirContents, _, err := client.Repositories.GetContents(
		context.Background(),
		owner,
		name,
		path,
		&github.RepositoryContentGetOptions{Ref: branch},
	)
	if err != nil {
		return nil, nil, err
	}

	if fileContent != nil {
		decoded, err := fileContent.GetContent()
		if err != nil {
			return nil, nil, err
		}
		return nil, &api.FileContent{
			Path:    fileContent.GetPath(),
			Content: decoded,
		}, nil
	}

	var entries []*api.DirEntry
	for _, item := range dirContents {
		entries = append(entries, &api.DirEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: item.GetType(),
			Size: int64(item.GetSize()),
		})
	}

	return entries, nil, nil
}

func translateRepo(r *github.Repository) *api.Repo {
	return &api.Repo{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		Private:     r.GetPrivate(),
	}
}

func translateCommit(c *github.RepositoryCommit) *api.Commit {
	commit := &api.Commit{
		SHA:     c.GetSHA(),
		Message: c.GetCommit().GetMessage(),
		HTMLURL: c.GetHTMLURL(),
	}

	if c.Author != nil {
		commit.Author = c.Author.GetLogin()
		commit.AuthorPic = c.Author.GetAvatarURL()
	} else {
		commit.Author = c.GetCommit().GetAuthor().GetName()
	}
	if date := c.GetCommit().GetAuthor().GetDate(); !date.IsZero() {
		commit.Created = date.Format(time.RFC3339)
	}

	return commit
}
