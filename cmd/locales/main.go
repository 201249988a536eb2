package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	defaultPrimaryLang       = "fr"
	defaultTranslationMarker = "<!-- TODO: Translate this content -->"
)

// localeSettings is the part of the ingestion settings file this tool needs
type localeSettings struct {
	DefaultLang       string `yaml:"default_lang"`
	TranslationMarker string `yaml:"translation_marker"`
}

type localeEnv struct {
	SettingsPath string `env:"NOTION_INGEST_SETTINGS" envDefault:".notion-ingest/settings.yaml"`
}

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: locales <pending|prune> <content-directory> [primary-lang]")
	}

	var cfg localeEnv
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Error parsing environment: %v", err)
	}
	settings, err := loadLocaleSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatal(err)
	}

	command := os.Args[1]
	contentDir := os.Args[2]
	primary := settings.DefaultLang
	if len(os.Args) > 3 {
		primary = os.Args[3]
	}

	switch command {
	case "pending":
		if err := listPending(contentDir, primary, settings.TranslationMarker); err != nil {
			log.Fatal(err)
		}
	case "prune":
		if err := pruneOrphans(contentDir, primary, bufio.NewReader(os.Stdin)); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("Unknown command %q", command)
	}
}

// loadLocaleSettings reads the settings file, keeping the defaults when it is absent
func loadLocaleSettings(path string) (*localeSettings, error) {
	settings := &localeSettings{
		DefaultLang:       defaultPrimaryLang,
		TranslationMarker: defaultTranslationMarker,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	if settings.DefaultLang == "" {
		return nil, errors.New("default_lang is required")
	}
	if settings.TranslationMarker == "" {
		return nil, errors.New("translation_marker is required")
	}
	return settings, nil
}

// translationDirs returns the locale directories of contentDir other than primary
func translationDirs(contentDir, primary string) ([]string, error) {
	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != primary && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// findPending returns the pages still carrying the translation marker
func findPending(contentDir, primary, marker string) ([]string, error) {
	langs, err := translationDirs(contentDir, primary)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, lang := range langs {
		err := filepath.WalkDir(filepath.Join(contentDir, lang), func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // Continue on errors
			}
			if d.IsDir() || !strings.HasSuffix(path, ".md") {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Error reading %s: %v", path, err)
				return nil
			}
			if strings.Contains(string(content), marker) {
				pending = append(pending, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", lang, err)
		}
	}

	sort.Strings(pending)
	return pending, nil
}

func listPending(contentDir, primary, marker string) error {
	pending, err := findPending(contentDir, primary, marker)
	if err != nil {
		return err
	}

	for _, path := range pending {
		fmt.Printf("  PENDING: %s\n", path)
	}
	fmt.Printf("\n%d page(s) awaiting translation\n", len(pending))
	return nil
}

// findOrphans returns translation pages whose primary-locale page no longer exists
func findOrphans(contentDir, primary string) ([]string, error) {
	langs, err := translationDirs(contentDir, primary)
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, lang := range langs {
		files, err := filepath.Glob(filepath.Join(contentDir, lang, "*.md"))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			counterpart := filepath.Join(contentDir, primary, filepath.Base(file))
			if _, err := os.Stat(counterpart); os.IsNotExist(err) {
				orphans = append(orphans, file)
			}
		}
	}

	sort.Strings(orphans)
	return orphans, nil
}

func pruneOrphans(contentDir, primary string, reader *bufio.Reader) error {
	orphans, err := findOrphans(contentDir, primary)
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		fmt.Println("No orphaned translation pages")
		return nil
	}

	totalRemoved := 0
	fmt.Printf("\nFound %d page(s) without a %s counterpart:\n", len(orphans), primary)
	for _, file := range orphans {
		if confirmDelete(reader, file) {
			if err := os.Remove(file); err != nil {
				log.Printf("Error removing %s: %v", file, err)
			} else {
				totalRemoved++
				fmt.Printf("  REMOVED: %s\n", file)
			}
		} else {
			fmt.Printf("  SKIP: %s\n", file)
		}
	}

	fmt.Printf("\nRemoved %d orphaned page(s)\n", totalRemoved)
	return nil
}

func confirmDelete(reader *bufio.Reader, path string) bool {
	for {
		fmt.Printf("  DELETE %s? [y/N]: ", path)
		input, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("Error reading input: %v", err)
			return false
		}
		response := strings.ToLower(strings.TrimSpace(input))
		switch response {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		default:
			fmt.Println("  Please enter y or n.")
		}
	}
}
