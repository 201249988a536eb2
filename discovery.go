package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// isMarkdownFile reports whether a directory entry is a Markdown document
func isMarkdownFile(entry os.DirEntry) bool {
	return !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md")
}

// markdownBaseNames collects the clean base names of the Markdown files in entries
func markdownBaseNames(entries []os.DirEntry) []string {
	var names []string
	for _, entry := range entries {
		if !isMarkdownFile(entry) {
			continue
		}
		if name := cleanBaseName(entry.Name()); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// matchesAssetFolder reports whether dirName looks like the asset folder of a
// document whose clean base name is baseName.
func matchesAssetFolder(dirName, baseName string) bool {
	if baseName == "" {
		return false
	}
	return stripExportHash(dirName) == baseName || strings.HasPrefix(dirName, baseName)
}

// IsAssetFolder reports whether dirName belongs to any of the given documents
func IsAssetFolder(dirName string, baseNames []string) bool {
	for _, baseName := range baseNames {
		if matchesAssetFolder(dirName, baseName) {
			return true
		}
	}
	return false
}

// FindMarkdownFiles recursively lists the documents to ingest under root.
// Directories that belong to a sibling document are not descended; their
// contents are picked up by the asset pass instead.
func FindMarkdownFiles(root string, settings *Settings) []string {
	var files []string
	walkDocuments(root, settings, &files)
	return files
}

func walkDocuments(dir string, settings *Settings, files *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Warning: could not read directory %s: %v", dir, err)
		return
	}

	// Classify against every document at this level before descending
	baseNames := markdownBaseNames(entries)

	for _, entry := range entries {
		name := entry.Name()
		if settings.IsIgnored(name) {
			debugLog("ignoring %s", filepath.Join(dir, name))
			continue
		}

		fullPath := filepath.Join(dir, name)
		switch {
		case entry.IsDir():
			if IsAssetFolder(name, baseNames) {
				continue
			}
			walkDocuments(fullPath, settings, files)
		case isMarkdownFile(entry):
			*files = append(*files, fullPath)
		}
	}
}
