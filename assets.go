package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FindAssetFolder returns the path of the asset folder associated with a
// document, or "" when it has none.
func FindAssetFolder(mdPath string) (string, error) {
	dir := filepath.Dir(mdPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading sibling entries: %w", err)
	}

	baseName := cleanBaseName(filepath.Base(mdPath))
	for _, entry := range entries {
		if entry.IsDir() && matchesAssetFolder(entry.Name(), baseName) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", nil
}

// CollectAssets lists the supported files of an asset folder and builds the
// filename mapping. The first cover-eligible image becomes the cover.
func CollectAssets(folder string, settings *Settings) (*AssetResult, error) {
	result := &AssetResult{
		Folder:  folder,
		Mapping: FileMapping{},
	}
	if folder == "" {
		return result, nil
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading asset folder %s: %w", folder, err)
	}

	owners := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		isImage := settings.IsImage(ext)
		if !isImage && !settings.IsOtherFile(ext) {
			continue
		}

		cleaned := CleanFilename(name)
		if previous, ok := owners[cleaned]; ok {
			log.Printf("Warning: %s and %s both normalize to %s; the latter wins", previous, name, cleaned)
		}
		owners[cleaned] = name

		result.Mapping[name] = cleaned
		result.Files = append(result.Files, AssetFile{
			SourcePath: filepath.Join(folder, name),
			Original:   name,
			Normalized: cleaned,
			Ext:        ext,
			IsImage:    isImage,
		})

		if result.Cover == "" && settings.IsCoverCandidate(ext) {
			result.Cover = cleaned
		}
	}

	return result, nil
}

// CopyAssets copies the collected files into the document's output asset directory
func CopyAssets(assets *AssetResult, outputDir string) error {
	if len(assets.Files) == 0 {
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating asset directory: %w", err)
	}

	for _, file := range assets.Files {
		dest := filepath.Join(outputDir, file.Normalized)
		if err := copyFile(file.SourcePath, dest); err != nil {
			return fmt.Errorf("copying %s: %w", file.Original, err)
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
