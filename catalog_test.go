package main

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadProjects(t *testing.T) {
	settings := newTestSettings(t)
	renderer, err := NewDocumentRenderer(settings)
	if err != nil {
		t.Fatalf("NewDocumentRenderer() unexpected error: %v", err)
	}

	for _, doc := range []*OutputDocument{
		{Title: "Radio", Date: "2021", Tags: []string{"Electronique"}, Lang: "fr", Body: "x", Path: settings.ContentPath("fr", "creation-radio")},
		{Title: "Bot", Lang: "fr", Body: "y", Path: settings.ContentPath("fr", "creation-bot-morpion")},
		{Title: "Radio", Date: "2021", Lang: "en", Body: "z", Path: settings.ContentPath("en", "creation-radio")},
	} {
		rendered, err := renderer.Render(doc)
		if err != nil {
			t.Fatalf("Render() unexpected error: %v", err)
		}
		if err := writeDocument(doc.Path, rendered); err != nil {
			t.Fatalf("writeDocument() unexpected error: %v", err)
		}
	}
	writeFile(t, filepath.Join(settings.ContentDirectory, "fr", "notes.txt"), "ignored")

	projects, err := LoadProjects(settings.ContentDirectory, "fr")
	if err != nil {
		t.Fatalf("LoadProjects() unexpected error: %v", err)
	}

	expected := []Project{
		{Slug: "creation-bot-morpion", Title: "Bot", Lang: "fr"},
		{Slug: "creation-radio", Title: "Radio", Tags: []string{"Electronique"}, Year: 2021, Lang: "fr"},
	}
	if !reflect.DeepEqual(projects, expected) {
		t.Errorf("LoadProjects() = %+v, want %+v", projects, expected)
	}
}

func TestLoadProjectsMissingLocale(t *testing.T) {
	projects, err := LoadProjects(t.TempDir(), "fr")
	if err != nil {
		t.Fatalf("LoadProjects() unexpected error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("LoadProjects() = %v, want none", projects)
	}
}

func TestProjectYear(t *testing.T) {
	tests := []struct {
		name     string
		meta     ProjectMeta
		expected int
	}{
		{"explicit year", ProjectMeta{Year: 2020, Date: "2024"}, 2020},
		{"year from date", ProjectMeta{Date: "2023-05-01"}, 2023},
		{"no date", ProjectMeta{}, 0},
		{"unparsable date", ProjectMeta{Date: "mai 2023"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := projectYear(&tt.meta); result != tt.expected {
				t.Errorf("projectYear() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestWriteProjectTable(t *testing.T) {
	var buf bytes.Buffer
	WriteProjectTable(&buf, []Project{
		{Slug: "creation-radio", Title: "Création d'une Radio", Tags: []string{"Electronique", "Physique"}, Year: 2021, Lang: "fr"},
		{Slug: "bot", Title: strings.Repeat("Très long titre ", 10), Lang: "en"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("WriteProjectTable() wrote %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "2021  Création d'une Radio") ||
		!strings.Contains(lines[0], "/fr/projets/creation-radio  Electronique, Physique") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "----  ") || !strings.Contains(lines[1], "…  /en/projects/bot") {
		t.Errorf("second row = %q", lines[1])
	}
}
