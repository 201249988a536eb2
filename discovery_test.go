package main

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestFindMarkdownFiles(t *testing.T) {
	settings := newTestSettings(t)
	root := settings.SourceDirectory

	writeFile(t, filepath.Join(root, "Mon Portfolio abc.md"), "# Index")
	writeFile(t, filepath.Join(root, ".hidden.md"), "# Hidden")
	writeFile(t, filepath.Join(root, "Projet A "+testHash+".md"), "# A")
	writeFile(t, filepath.Join(root, "Projet A "+testHash, "image.png"), "png")
	writeFile(t, filepath.Join(root, "Projet A "+testHash, "nested.md"), "# Nested")
	writeFile(t, filepath.Join(root, "Sub", "Projet B.md"), "# B")
	writeFile(t, filepath.Join(root, "Sub", "Projet B", "note.md"), "# Note")
	writeFile(t, filepath.Join(root, "Other", "deep.md"), "# Deep")
	writeFile(t, filepath.Join(root, "readme.txt"), "not markdown")

	result := FindMarkdownFiles(root, settings)
	expected := []string{
		filepath.Join(root, "Other", "deep.md"),
		filepath.Join(root, "Projet A "+testHash+".md"),
		filepath.Join(root, "Sub", "Projet B.md"),
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("FindMarkdownFiles() = %v, want %v", result, expected)
	}
}

func TestFindMarkdownFilesIgnoredDirectory(t *testing.T) {
	settings := newTestSettings(t)
	root := settings.SourceDirectory

	writeFile(t, filepath.Join(root, ".trash", "old.md"), "# Old")
	writeFile(t, filepath.Join(root, "kept.md"), "# Kept")

	result := FindMarkdownFiles(root, settings)
	expected := []string{filepath.Join(root, "kept.md")}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("FindMarkdownFiles() = %v, want %v", result, expected)
	}
}

func TestFindMarkdownFilesMissingRoot(t *testing.T) {
	settings := newTestSettings(t)

	result := FindMarkdownFiles(filepath.Join(t.TempDir(), "missing"), settings)
	if len(result) != 0 {
		t.Errorf("FindMarkdownFiles() = %v, want none", result)
	}
}

func TestIsAssetFolder(t *testing.T) {
	baseNames := []string{"Projet A", "Bot Morpion"}

	tests := []struct {
		name     string
		dirName  string
		expected bool
	}{
		{"exact name", "Projet A", true},
		{"name with export hash", "Projet A " + testHash, true},
		{"prefixed name", "Bot Morpion images", true},
		{"unrelated", "Archives", false},
		{"prefix of the document name only", "Projet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsAssetFolder(tt.dirName, baseNames); result != tt.expected {
				t.Errorf("IsAssetFolder(%q) = %v, want %v", tt.dirName, result, tt.expected)
			}
		})
	}
}
