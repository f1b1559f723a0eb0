// Package storage resolves uploaded résumé files to stable locators. The
// core persists only the locator; file bytes live under the upload directory
// and are served statically.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ResumeStore persists uploaded files and returns retrievable locators.
type ResumeStore interface {
	Save(fileName string, content io.Reader) (string, error)
}

type diskResumeStore struct {
	dir      string
	basePath string
}

// NewDiskResumeStore writes files under dir and issues locators rooted at
// basePath (e.g. "/uploads").
func NewDiskResumeStore(dir, basePath string) (ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &diskResumeStore{dir: dir, basePath: basePath}, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (s *diskResumeStore) Save(fileName string, content io.Reader) (string, error) {
	name := uuid.NewString() + "-" + sanitizeFileName(fileName)
	target := filepath.Join(s.dir, name)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("write resume file: %w", err)
	}

	return path.Join(s.basePath, name), nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeFileChars.ReplaceAllString(name, "-")
	if name == "" || name == "." {
		name = "resume"
	}
	return name
}
