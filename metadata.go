package main

import (
	"regexp"
	"strings"
)

const maxDescriptionLength = 200

var (
	titleRegex      = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)
	emphasisYear    = regexp.MustCompile(`\*[^*]*(\d{4})\*`)
	dashYear        = regexp.MustCompile(`[–—-]\s*(\d{4})`)
	blockquoteRegex = regexp.MustCompile(`(?m)^>[ \t]*(.+)$`)
)

// extractTitle returns the text of the first top-level heading
func extractTitle(content string) string {
	match := titleRegex.FindStringSubmatch(content)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// extractDate returns the project year, taken from an emphasized line such as
// "*Projet de groupe - 2023*" or from a dash followed by a year.
func extractDate(content string) string {
	if match := emphasisYear.FindStringSubmatch(content); len(match) >= 2 {
		return match[1]
	}
	if match := dashYear.FindStringSubmatch(content); len(match) >= 2 {
		return match[1]
	}
	return ""
}

// extractDescription returns the first blockquote, or else the first plain
// paragraph line, without bold markers and truncated to 200 characters.
func extractDescription(content string) string {
	if match := blockquoteRegex.FindStringSubmatch(content); len(match) >= 2 {
		return truncateRunes(strings.TrimSpace(strings.ReplaceAll(match[1], "**", "")), maxDescriptionLength)
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.ContainsAny(trimmed[:1], "#*[!") {
			continue
		}
		return truncateRunes(strings.ReplaceAll(trimmed, "**", ""), maxDescriptionLength)
	}

	return ""
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// fallbackTitle is the raw filename without its extension
func fallbackTitle(filename string) string {
	return strings.TrimSuffix(filename, ".md")
}

// ExtractMetadata fills the derived fields of a document from its content
func ExtractMetadata(doc *SourceDocument, settings *Settings) {
	doc.Slug = GenerateSlug(doc.Filename)
	doc.Title = extractTitle(doc.Content)
	if doc.Title == "" {
		doc.Title = fallbackTitle(doc.Filename)
	}
	doc.Date = extractDate(doc.Content)
	doc.Description = extractDescription(doc.Content)
	doc.Tags = settings.TagsFor(doc.Slug)
}
