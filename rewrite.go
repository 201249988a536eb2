package main

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// RewriteContext carries the per-document inputs of the rewrite passes
type RewriteContext struct {
	Slug      string
	Mapping   FileMapping
	URLPrefix string
}

// assetURL returns the site-rooted path of a normalized asset
func (rc RewriteContext) assetURL(name string) string {
	return strings.TrimRight(rc.URLPrefix, "/") + "/" + rc.Slug + "/" + name
}

// RewritePass is a single pure transformation of a document body
type RewritePass struct {
	Name  string
	Apply func(content string, rc RewriteContext) string
}

// ContentRewriter applies its passes in registration order
type ContentRewriter struct {
	passes []RewritePass
}

// NewContentRewriter creates a rewriter with the default pass sequence
func NewContentRewriter(settings *Settings) *ContentRewriter {
	r := &ContentRewriter{}

	r.AddPass(RewritePass{Name: "strip-leading-heading", Apply: stripLeadingHeading})
	r.AddPass(RewritePass{Name: "rewrite-asset-paths", Apply: rewriteAssetPaths})
	if settings != nil && settings.ConvertHTMLBlocks {
		converter := md.NewConverter("", true, nil)
		r.AddPass(RewritePass{Name: "convert-html-blocks", Apply: convertHTMLBlocks(converter)})
	}
	r.AddPass(RewritePass{Name: "unwrap-block-references", Apply: unwrapBlockReferences})
	r.AddPass(RewritePass{Name: "trim-trailing-whitespace", Apply: trimTrailingWhitespace})
	r.AddPass(RewritePass{Name: "collapse-blank-lines", Apply: collapseBlankLines})

	return r
}

// AddPass appends a pass to the chain
func (r *ContentRewriter) AddPass(pass RewritePass) {
	r.passes = append(r.passes, pass)
}

// Passes returns the names of the registered passes in order
func (r *ContentRewriter) Passes() []string {
	names := make([]string, 0, len(r.passes))
	for _, pass := range r.passes {
		names = append(names, pass.Name)
	}
	return names
}

// Rewrite runs every pass over content
func (r *ContentRewriter) Rewrite(content string, rc RewriteContext) string {
	for _, pass := range r.passes {
		content = pass.Apply(content, rc)
	}
	return content
}

var (
	leadingHeadingRegex = regexp.MustCompile(`\A\n*#[ \t]+[^\n]+(?:\n+|\z)`)
	blockReferenceRegex = regexp.MustCompile(`(?i)\[([^\]]+)\]\([^)]*%20[a-f0-9]{32}[^)]*\)`)
	trailingSpaceRegex  = regexp.MustCompile(`(?m)[ \t]+$`)
	blankLinesRegex     = regexp.MustCompile(`\n{4,}`)
	asideRegex          = regexp.MustCompile(`(?is)<aside>(.*?)</aside>`)
)

// stripLeadingHeading removes the top-level heading opening the document,
// since its text becomes the front-matter title.
func stripLeadingHeading(content string, _ RewriteContext) string {
	loc := leadingHeadingRegex.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[loc[1]:]
}

// rewriteAssetPaths points image and link targets at the copied assets
func rewriteAssetPaths(content string, rc RewriteContext) string {
	originals := make([]string, 0, len(rc.Mapping))
	for original := range rc.Mapping {
		originals = append(originals, original)
	}
	sort.Strings(originals)

	for _, original := range originals {
		newPath := strings.ReplaceAll(rc.assetURL(rc.Mapping[original]), "$", "$$")

		// Images first so they are not rewritten as plain links
		for _, pattern := range assetPatterns(`!\[([^\]]*)\]`, original) {
			content = pattern.ReplaceAllString(content, "![${1}]("+newPath+")")
		}
		for _, pattern := range assetPatterns(`\[([^\]]*)\]`, original) {
			content = pattern.ReplaceAllString(content, "[${1}]("+newPath+")")
		}
	}
	return content
}

// assetPatterns builds the raw and percent-encoded patterns for one filename.
// The target may carry any path prefix ending in a slash or backslash.
func assetPatterns(label, filename string) []*regexp.Regexp {
	forms := []string{filename}
	if encoded := encodeURIComponent(filename); encoded != filename {
		forms = append(forms, encoded)
	}

	patterns := make([]*regexp.Regexp, 0, len(forms))
	for _, form := range forms {
		expr := fmt.Sprintf(`(?i)%s\((?:[^)]*[/\\])?%s\)`, label, regexp.QuoteMeta(form))
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// encodeURIComponent percent-encodes s the way browsers encode link targets
func encodeURIComponent(s string) string {
	encoded := url.QueryEscape(s)
	replacer := strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
	return replacer.Replace(encoded)
}

// unwrapBlockReferences keeps only the text of links to export-internal blocks
func unwrapBlockReferences(content string, _ RewriteContext) string {
	return blockReferenceRegex.ReplaceAllString(content, "${1}")
}

// trimTrailingWhitespace strips spaces and tabs at the end of every line
func trimTrailingWhitespace(content string, _ RewriteContext) string {
	return trailingSpaceRegex.ReplaceAllString(content, "")
}

// collapseBlankLines limits runs of newlines to three
func collapseBlankLines(content string, _ RewriteContext) string {
	return blankLinesRegex.ReplaceAllString(content, "\n\n\n")
}

// convertHTMLBlocks turns exported callouts (<aside>) into Markdown blockquotes
func convertHTMLBlocks(converter *md.Converter) func(string, RewriteContext) string {
	return func(content string, _ RewriteContext) string {
		return asideRegex.ReplaceAllStringFunc(content, func(block string) string {
			inner := asideRegex.FindStringSubmatch(block)[1]
			markdown, err := converter.ConvertString(inner)
			if err != nil {
				debugLog("keeping callout as HTML: %v", err)
				return block
			}

			lines := strings.Split(strings.TrimSpace(markdown), "\n")
			for i, line := range lines {
				lines[i] = strings.TrimRight("> "+line, " ")
			}
			return strings.Join(lines, "\n")
		})
	}
}
