package main

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	markdownExtRegex  = regexp.MustCompile(`(?i)\.md$`)
	exportHashRegex   = regexp.MustCompile(`(?i)\s+[a-f0-9]{32}$`)
	elisionRegex      = regexp.MustCompile(`\b[dl]['’](?:une?\s+)?`)
	apostropheRegex   = regexp.MustCompile(`['’]`)
	slugInvalidRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	assetInvalidRegex = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashRunRegex      = regexp.MustCompile(`-+`)
)

// combiningMarks is the Combining Diacritical Marks block (U+0300–U+036F)
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// stripExportHash removes the trailing " <32 hex>" token Notion appends to exported names
func stripExportHash(name string) string {
	return exportHashRegex.ReplaceAllString(name, "")
}

// cleanBaseName returns a Markdown filename without its extension and export hash
func cleanBaseName(filename string) string {
	return stripExportHash(markdownExtRegex.ReplaceAllString(filename, ""))
}

// removeDiacritics decomposes s and drops combining marks ("é" -> "e")
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// GenerateSlug creates a URL slug from an exported filename.
// "Création d'un Bot Morpion 18ebdf16c65b8006a71fd72930427e92.md" -> "creation-bot-morpion"
func GenerateSlug(filename string) string {
	slug := cleanBaseName(filename)
	slug = strings.ToLower(removeDiacritics(slug))
	slug = elisionRegex.ReplaceAllString(slug, "")
	slug = apostropheRegex.ReplaceAllString(slug, "")
	slug = slugInvalidRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return dashRunRegex.ReplaceAllString(slug, "-")
}

// CleanFilename normalizes an asset filename for web usage, keeping its extension
func CleanFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	clean := strings.ToLower(removeDiacritics(base))
	clean = assetInvalidRegex.ReplaceAllString(clean, "-")
	clean = strings.Trim(clean, "-")
	clean = dashRunRegex.ReplaceAllString(clean, "-")

	return clean + strings.ToLower(ext)
}
