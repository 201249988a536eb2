package main

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"first heading", "# Bot Morpion\n\n# Second", "Bot Morpion"},
		{"heading after text", "Intro\n\n#  Spaced Title  \n", "Spaced Title"},
		{"only subheadings", "## Sub\n### Deeper", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractTitle(tt.content); result != tt.expected {
				t.Errorf("extractTitle() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"emphasized line", "# T\n\n*Projet de groupe - 2023*\n", "2023"},
		{"en dash", "Réalisé en équipe – 2022", "2022"},
		{"hyphen without spaces", "Stage-2021", "2021"},
		{"no year", "Budget de 15 euros", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractDate(tt.content); result != tt.expected {
				t.Errorf("extractDate() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "blockquote",
			content:  "# T\n\nIntro\n\n> **Résumé** du projet\nsuite",
			expected: "Résumé du projet",
		},
		{
			name:     "first plain line",
			content:  "# T\n\n*italique*\n[lien](x)\n![img](y)\nPremier **paragraphe**.",
			expected: "Premier paragraphe.",
		},
		{
			name:     "nothing usable",
			content:  "# T\n\n## Sous-titre\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractDescription(tt.content); result != tt.expected {
				t.Errorf("extractDescription() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractDescriptionTruncatesRunes(t *testing.T) {
	result := extractDescription(strings.Repeat("é", 250))

	if count := utf8.RuneCountInString(result); count != maxDescriptionLength {
		t.Errorf("extractDescription() has %d characters, want %d", count, maxDescriptionLength)
	}
	if !utf8.ValidString(result) {
		t.Errorf("extractDescription() returned invalid UTF-8")
	}
}

func TestExtractMetadata(t *testing.T) {
	settings := newTestSettings(t)

	doc := &SourceDocument{
		Filename: "Simulateur Parcoursup " + testHash + ".md",
		Content:  "# Simulateur Parcoursup\n\n*Projet - 2024*\n\nPlateforme de simulation.",
	}
	ExtractMetadata(doc, settings)

	if doc.Slug != "simulateur-parcoursup" {
		t.Errorf("Slug = %q", doc.Slug)
	}
	if doc.Title != "Simulateur Parcoursup" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Date != "2024" {
		t.Errorf("Date = %q", doc.Date)
	}
	if doc.Description != "Plateforme de simulation." {
		t.Errorf("Description = %q", doc.Description)
	}
	if !reflect.DeepEqual(doc.Tags, []string{"Fullstack", "React", "Python"}) {
		t.Errorf("Tags = %v", doc.Tags)
	}
}

func TestExtractMetadataIndentedHeading(t *testing.T) {
	settings := newTestSettings(t)
	content := "  # Introduction\n\nCorps."

	doc := &SourceDocument{Filename: "Projet X.md", Content: content}
	ExtractMetadata(doc, settings)
	if doc.Title != "Projet X" {
		t.Errorf("Title = %q, want the filename", doc.Title)
	}

	// The heading is not the title, so it has to survive in the body
	body := NewContentRewriter(settings).Rewrite(content, RewriteContext{Slug: doc.Slug})
	if !strings.Contains(body, "Introduction") {
		t.Errorf("body = %q, lost the indented heading", body)
	}
}

func TestExtractMetadataFallbacks(t *testing.T) {
	settings := newTestSettings(t)

	doc := &SourceDocument{Filename: "Notes.md", Content: "Texte sans titre."}
	ExtractMetadata(doc, settings)

	if doc.Title != "Notes" {
		t.Errorf("Title = %q, want the filename", doc.Title)
	}
	if doc.Tags == nil || len(doc.Tags) != 0 {
		t.Errorf("Tags = %#v, want an empty list", doc.Tags)
	}
	if doc.Date != "" {
		t.Errorf("Date = %q, want none", doc.Date)
	}
}
