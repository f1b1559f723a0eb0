package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskResumeStoreSaveReturnsLocator(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskResumeStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewDiskResumeStore() error = %v", err)
	}

	locator, err := store.Save("My Resume.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(locator, "/uploads/") {
		t.Fatalf("locator = %q, want /uploads/ prefix", locator)
	}
	if !strings.HasSuffix(locator, "My-Resume.pdf") {
		t.Fatalf("locator = %q, want sanitized file name suffix", locator)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(locator)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("stored content = %q, want original bytes", data)
	}
}

func TestDiskResumeStoreUniqueNames(t *testing.T) {
	store, err := NewDiskResumeStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewDiskResumeStore() error = %v", err)
	}

	first, err := store.Save("resume.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := store.Save("resume.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct locators, both = %q", first)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Resume.pdf", "My-Resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{"  ", "resume"},
		{"cv_v2 (final).pdf", "cv_v2-final-.pdf"},
	}
	for _, tt := range tests {
		if got := sanitizeFileName(tt.input); got != tt.want {
			t.Fatalf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
