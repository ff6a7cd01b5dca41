// Copyright 2019 Laszlo Fogas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

// Repo is a Github repository reference. It is fetched per session
// and never persisted, only pinned ids are.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`
	HTMLURL     string `json:"htmlUrl"`
	Private     bool   `json:"private"`
}

// ClassifiedRepos partitions a user's repositories by the presence
// of the marker file, with the pinned ones surfaced separately.
// A repo stays in its configured/other section even when pinned.
type ClassifiedRepos struct {
	Configured []*Repo `json:"configured"`
	Other      []*Repo `json:"other"`
	Pinned     []*Repo `json:"pinned"`
	PinnedIDs  []int64 `json:"pinnedIds"`
}

// Branch is a repository branch, with the repo's default branch flagged
type Branch struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// Commit is an entry of a branch's commit history
type Commit struct {
	SHA       string `json:"sha"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	AuthorPic string `json:"authorPic"`
	Created   string `json:"created"`
	HTMLURL   string `json:"htmlUrl"`
}

// DirEntry is an item of a directory listing
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// FileContent is a loaded, decoded file
type FileContent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// BrowseResult is the state of the repository explorer for one path.
// Entries and File are never both set: selecting a file clears the
// listing slot and selecting a directory clears the file slot.
type BrowseResult struct {
	Repo         string       `json:"repo"`
	Path         string       `json:"path"`
	PathSegments []string     `json:"pathSegments"`
	Entries      []*DirEntry  `json:"entries,omitempty"`
	File         *FileContent `json:"file,omitempty"`
	Configured   bool         `json:"configured"`
}
