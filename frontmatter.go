package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var templateFuncs = template.FuncMap{
	"escape":    escapeQuoted,
	"quoteList": quoteList,
}

// escapeQuoted escapes a value for a double-quoted front-matter string
func escapeQuoted(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// quoteList renders tags as `"A", "B"`
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = `"` + escapeQuoted(value) + `"`
	}
	return strings.Join(quoted, ", ")
}

// DocumentRenderer renders output documents with the project template
type DocumentRenderer struct {
	tmpl *template.Template
}

// NewDocumentRenderer parses the configured template
func NewDocumentRenderer(settings *Settings) (*DocumentRenderer, error) {
	text, err := settings.GetTemplate()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("project").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	return &DocumentRenderer{tmpl: tmpl}, nil
}

// Render executes the template for one output document
func (r *DocumentRenderer) Render(doc *OutputDocument) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// BuildOutputs returns the primary locale document followed by one
// placeholder per translation locale. Only Lang and Marker differ.
func BuildOutputs(doc *SourceDocument, body, cover string, settings *Settings) []*OutputDocument {
	coverURL := ""
	if cover != "" {
		coverURL = settings.AssetURL(doc.Slug, cover)
	}

	base := OutputDocument{
		Title:       doc.Title,
		Description: doc.Description,
		Date:        doc.Date,
		Tags:        doc.Tags,
		Cover:       coverURL,
		Draft:       false,
		Body:        body,
	}

	outputs := make([]*OutputDocument, 0, 1+len(settings.TranslationLangs))

	primary := base
	primary.Lang = settings.DefaultLang
	primary.Path = settings.ContentPath(primary.Lang, doc.Slug)
	outputs = append(outputs, &primary)

	for _, lang := range settings.TranslationLangs {
		variant := base
		variant.Lang = lang
		variant.Marker = settings.TranslationMarker
		variant.Path = settings.ContentPath(lang, doc.Slug)
		outputs = append(outputs, &variant)
	}

	return outputs
}

// writeDocument writes rendered content, creating parent directories
func writeDocument(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
