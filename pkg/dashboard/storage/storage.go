// Package storage persists uploaded resumes on local disk and hands
// back the public URL they are served under.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var unsafeChars = regexp.MustCompile(`[^\w.-]+`)

// ResumeStore writes resumes under root and serves them under
// /files/resumes/{key}
type ResumeStore struct {
	root string
}

func NewResumeStore(root string) (*ResumeStore, error) {
	dir := filepath.Join(root, "resumes")
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "could not create upload dir")
	}

	return &ResumeStore{root: root}, nil
}

// Save stores the resume under a collision-free key and returns the
// key and the URL path it is served under
func (s *ResumeStore) Save(fileName string, content io.Reader) (string, string, error) {
	key := fmt.Sprintf("%d_%s_%s",
		time.Now().UnixMilli(),
		uuid.New().String(),
		sanitizeFileName(fileName),
	)

	file, err := os.Create(filepath.Join(s.root, "resumes", key))
	if err != nil {
		return "", "", errors.WithMessage(err, "could not create resume file")
	}
	defer file.Close()

	_, err = io.Copy(file, content)
	if err != nil {
		return "", "", errors.WithMessage(err, "could not write resume file")
	}

	return key, "/files/resumes/" + key, nil
}

// Root returns the directory the /files routes serve from
func (s *ResumeStore) Root() string {
	return s.root
}

func sanitizeFileName(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}
