package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSave(t *testing.T) {
	root, err := os.MkdirTemp("", "uploads")
	assert.Nil(t, err)
	defer os.RemoveAll(root)

	store, err := NewResumeStore(root)
	assert.Nil(t, err)

	key, url, err := store.Save("my resume (final).pdf", strings.NewReader("%PDF-1.4"))
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(url, "/files/resumes/"))
	assert.True(t, strings.HasSuffix(key, "_my_resume_final_.pdf"))
	assert.False(t, strings.Contains(key, " "))

	content, err := os.ReadFile(filepath.Join(root, "resumes", key))
	assert.Nil(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
}

func TestSaveUniqueKeys(t *testing.T) {
	root, err := os.MkdirTemp("", "uploads")
	assert.Nil(t, err)
	defer os.RemoveAll(root)

	store, err := NewResumeStore(root)
	assert.Nil(t, err)

	first, _, err := store.Save("resume.pdf", strings.NewReader("a"))
	assert.Nil(t, err)
	second, _, err := store.Save("resume.pdf", strings.NewReader("b"))
	assert.Nil(t, err)

	assert.NotEqual(t, first, second)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "r_sum_.pdf", sanitizeFileName("résumé.pdf"))
	assert.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "cv-2024.v2.pdf", sanitizeFileName("cv-2024.v2.pdf"))
}
