// Package browse holds the repository explorer logic that does not
// talk to Github: deriving the browse intent from the route, ordering
// directory listings, partitioning repositories by the marker file and
// maintaining the pinned set.
package browse

import (
	"sort"
	"strings"

	"github.com/simantic-io/simantic/pkg/dashboard/api"
)

// Intent is what a route designates in the repository explorer.
// The route is the source of truth: it is re-derived on every
// navigation and on direct navigation to a deep link.
type Intent struct {
	Repo string
	Path string

	// ListingPath is the directory to list. For a deep link the path
	// may denote either a directory or a file, so the listing is
	// fetched for the parent and FilePath is fetched speculatively.
	ListingPath string
	FilePath    string
}

// FromRoute derives the browse intent from the route parameters
func FromRoute(owner string, name string, path string) Intent {
	path = strings.Trim(path, "/")
	intent := Intent{
		Repo: owner + "/" + name,
		Path: path,
	}

	if path == "" {
		return intent
	}

	intent.FilePath = path
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		intent.ListingPath = path[:idx]
	}
	return intent
}

// PathSegments splits a path into its breadcrumb segments
func PathSegments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "/")
}

// ParentPath removes the last path segment
func ParentPath(path string) string {
	segments := PathSegments(path)
	if len(segments) < 2 {
		return ""
	}
	return strings.Join(segments[:len(segments)-1], "/")
}

// SortEntries orders a directory listing: directories before files,
// alphabetically within each group
func SortEntries(entries []*api.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entries[i].Type == "dir"
		}
		return entries[i].Name < entries[j].Name
	})
}

// Classify partitions repositories into configured and other based on
// the marker-file search results. The partition is total and disjoint:
// membership in the search result set decides, list order does not.
func Classify(repos []*api.Repo, markerRepos map[string]bool) (configured []*api.Repo, other []*api.Repo) {
	configured = []*api.Repo{}
	other = []*api.Repo{}
	for _, repo := range repos {
		if markerRepos[repo.FullName] {
			configured = append(configured, repo)
		} else {
			other = append(other, repo)
		}
	}
	return configured, other
}

// Pinned selects the pinned repositories in pin order. Dangling pins,
// ids of repositories the user no longer has access to, are skipped
// but kept in the pinned set.
func Pinned(repos []*api.Repo, pinnedIDs []int64) []*api.Repo {
	byID := map[int64]*api.Repo{}
	for _, repo := range repos {
		byID[repo.ID] = repo
	}

	pinned := []*api.Repo{}
	for _, id := range pinnedIDs {
		if repo, ok := byID[id]; ok {
			pinned = append(pinned, repo)
		}
	}
	return pinned
}

// TogglePin computes the new pinned set as the symmetric difference
// with the single id. Calling it twice restores the original set.
func TogglePin(pinnedIDs []int64, id int64) []int64 {
	toggled := []int64{}
	found := false
	for _, pin := range pinnedIDs {
		if pin == id {
			found = true
			continue
		}
		toggled = append(toggled, pin)
	}
	if !found {
		toggled = append(toggled, id)
	}
	return toggled
}
