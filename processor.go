package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptySlug is returned when a filename normalizes to nothing
var ErrEmptySlug = errors.New("filename produces an empty slug")

// Options controls a single ingestion run
type Options struct {
	DryRun  bool
	Verbose bool
}

// Ingester handles the main ingestion workflow
type Ingester struct {
	settings *Settings
	options  Options
	rewriter *ContentRewriter
	renderer *DocumentRenderer
	slugs    map[string]string
}

// NewIngester creates an ingester for the given settings
func NewIngester(settings *Settings, options Options) (*Ingester, error) {
	if settings == nil {
		return nil, errors.New("settings are required")
	}

	renderer, err := NewDocumentRenderer(settings)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return &Ingester{
		settings: settings,
		options:  options,
		rewriter: NewContentRewriter(settings),
		renderer: renderer,
		slugs:    make(map[string]string),
	}, nil
}

// Run discovers and processes every document under the source directory
func (in *Ingester) Run() (*Summary, error) {
	info, err := os.Stat(in.settings.SourceDirectory)
	if err != nil {
		return nil, fmt.Errorf("source directory not found: %s: %w", in.settings.SourceDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", in.settings.SourceDirectory)
	}

	files := FindMarkdownFiles(in.settings.SourceDirectory, in.settings)
	summary := &Summary{Results: make([]ProcessingResult, 0, len(files))}
	if len(files) == 0 {
		return summary, nil
	}

	log.Printf("Found %d project(s) to process", len(files))

	for i, path := range files {
		debugLog("[%d/%d] Processing: %s", i+1, len(files), filepath.Base(path))
		result := in.ProcessDocument(path)
		summary.Results = append(summary.Results, result)

		if result.Status == StatusSuccess {
			summary.Processed++
			summary.AssetsCount += result.AssetsCount
			log.Printf("✓ %s (%d asset(s))", result.Slug, result.AssetsCount)
			if in.options.DryRun {
				for _, asset := range result.Assets {
					log.Printf("  → would copy %s", asset)
				}
				for _, output := range result.Outputs {
					log.Printf("  → would write %s", output)
				}
			}
		} else {
			summary.Failed++
			log.Printf("✗ Failed %s: %v", path, result.Error)
		}
	}

	return summary, nil
}

// ProcessDocument ingests a single exported document. Errors are reported in
// the result rather than returned so the batch can continue.
func (in *Ingester) ProcessDocument(mdPath string) ProcessingResult {
	result, err := in.processDocument(mdPath)
	if err != nil {
		return ProcessingResult{
			Path:   mdPath,
			Status: StatusError,
			Error:  err,
		}
	}
	return *result
}

func (in *Ingester) processDocument(mdPath string) (*ProcessingResult, error) {
	filename := filepath.Base(mdPath)

	content, err := os.ReadFile(mdPath)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc := &SourceDocument{
		Path:     mdPath,
		Filename: filename,
		Content:  string(content),
	}
	ExtractMetadata(doc, in.settings)
	if doc.Slug == "" {
		return nil, ErrEmptySlug
	}

	if previous, ok := in.slugs[doc.Slug]; ok && previous != mdPath {
		log.Printf("Warning: %s and %s share slug %q; the latter overwrites the former", previous, mdPath, doc.Slug)
	}
	in.slugs[doc.Slug] = mdPath

	debugLog("Slug: %s", doc.Slug)
	debugLog("Title: %s", doc.Title)
	debugLog("Date: %s", valueOr(doc.Date, "N/A"))
	debugLog("Tags: %s", valueOr(strings.Join(doc.Tags, ", "), "None"))

	// Find and process assets (images, PDFs, etc.)
	folder, err := FindAssetFolder(mdPath)
	if err != nil {
		return nil, err
	}
	assets, err := CollectAssets(folder, in.settings)
	if err != nil {
		return nil, err
	}
	assetDir := in.settings.AssetDir(doc.Slug)
	copies := make([]string, 0, len(assets.Files))
	for _, file := range assets.Files {
		debugLog("Asset: %s -> %s", file.Original, file.Normalized)
		copies = append(copies, filepath.Join(assetDir, file.Normalized))
	}
	if !in.options.DryRun {
		if err := CopyAssets(assets, assetDir); err != nil {
			return nil, err
		}
	}

	body := in.rewriter.Rewrite(doc.Content, RewriteContext{
		Slug:      doc.Slug,
		Mapping:   assets.Mapping,
		URLPrefix: in.settings.ImagesURLPrefix,
	})
	if in.options.Verbose {
		for _, target := range FindRelativeLinks(body) {
			log.Printf("  Warning: unresolved reference %q in %s", target, filename)
		}
	}

	outputs := BuildOutputs(doc, body, assets.Cover, in.settings)
	paths := make([]string, 0, len(outputs))
	for _, output := range outputs {
		rendered, err := in.renderer.Render(output)
		if err != nil {
			return nil, err
		}
		if !in.options.DryRun {
			if err := writeDocument(output.Path, rendered); err != nil {
				return nil, fmt.Errorf("writing %s: %w", output.Path, err)
			}
		}
		debugLog("Output (%s): %s", strings.ToUpper(output.Lang), output.Path)
		paths = append(paths, output.Path)
	}

	return &ProcessingResult{
		Path:        mdPath,
		Status:      StatusSuccess,
		Slug:        doc.Slug,
		Title:       doc.Title,
		Tags:        doc.Tags,
		AssetsCount: len(assets.Mapping),
		Assets:      copies,
		Outputs:     paths,
	}, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
