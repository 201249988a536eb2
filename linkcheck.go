package main

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var linkParser = goldmark.New().Parser()

// FindRelativeLinks returns the image and link destinations of a Markdown body
// that still point at files relative to the export (not rewritten to a
// site-rooted path, not external, not an anchor).
func FindRelativeLinks(body string) []string {
	source := []byte(body)
	doc := linkParser.Parse(text.NewReader(source))

	var found []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var destination []byte
		switch node := n.(type) {
		case *ast.Image:
			destination = node.Destination
		case *ast.Link:
			destination = node.Destination
		default:
			return ast.WalkContinue, nil
		}

		if dest := string(destination); isRelativeTarget(dest) {
			found = append(found, dest)
		}
		return ast.WalkContinue, nil
	})

	return found
}

func isRelativeTarget(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return false
	}
	parsed, err := url.Parse(dest)
	if err != nil {
		return true
	}
	return parsed.Scheme == ""
}
