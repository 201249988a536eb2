package main

import (
	"os"
	"path/filepath"
	"testing"
)

const testHash = "18ebdf16c65b8006a71fd72930427e92"

// newTestSettings returns the embedded defaults with every directory inside a temp dir
func newTestSettings(t *testing.T) *Settings {
	t.Helper()
	root := t.TempDir()

	settings, err := parseSettings([]byte(defaultSettings))
	if err != nil {
		t.Fatalf("parsing embedded settings: %v", err)
	}
	settings.SourceDirectory = filepath.Join(root, "exports")
	settings.ContentDirectory = filepath.Join(root, "content")
	settings.ImagesDirectory = filepath.Join(root, "images")
	if err := settings.Validate(); err != nil {
		t.Fatalf("validating settings: %v", err)
	}

	if err := os.MkdirAll(settings.SourceDirectory, 0755); err != nil {
		t.Fatalf("creating source directory: %v", err)
	}
	return settings
}

// writeFile creates a file and its parent directories
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(content)
}
