package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".notion-ingest"

// Embedded configuration files
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/project-template.md
var defaultTemplate string

//go:embed config/translator-system-prompt.md
var translatorSystemPrompt string

//go:embed config/translation-schema.json
var translationSchema string

// Configuration validation errors.
var (
	ErrMissingSourceDirectory  = errors.New("source_directory is required")
	ErrMissingContentDirectory = errors.New("content_directory is required")
	ErrMissingImagesDirectory  = errors.New("images_directory is required")
	ErrMissingDefaultLang      = errors.New("default_lang is required")
	ErrDuplicateLang           = errors.New("translation_langs must not repeat default_lang")
	ErrInvalidExtension        = errors.New("extensions must start with a dot")
	ErrUnknownTag              = errors.New("project tag is not in available_tags")
	ErrInvalidIgnorePattern    = errors.New("ignore pattern is not a valid regular expression")
)

// TranslatorSettings configures the translation agent
type TranslatorSettings struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	SourceDirectory   string              `yaml:"source_directory"`
	ContentDirectory  string              `yaml:"content_directory"`
	ImagesDirectory   string              `yaml:"images_directory"`
	ImagesURLPrefix   string              `yaml:"images_url_prefix"`
	TemplatePath      string              `yaml:"template_path"`
	DefaultLang       string              `yaml:"default_lang"`
	TranslationLangs  []string            `yaml:"translation_langs"`
	TranslationMarker string              `yaml:"translation_marker"`
	ConvertHTMLBlocks bool                `yaml:"convert_html_blocks"`
	AvailableTags     []string            `yaml:"available_tags"`
	ProjectTags       map[string][]string `yaml:"project_tags"`
	ImageExtensions   []string            `yaml:"image_extensions"`
	CoverExtensions   []string            `yaml:"cover_extensions"`
	OtherExtensions   []string            `yaml:"other_extensions"`
	IgnorePatterns    []string            `yaml:"ignore_patterns"`
	Translator        TranslatorSettings  `yaml:"translator"`

	ignore []*regexp.Regexp
}

// EnvOverrides holds settings that may be supplied through the environment
type EnvOverrides struct {
	SourceDirectory  string `env:"NOTION_INGEST_SOURCE_DIR"`
	ContentDirectory string `env:"NOTION_INGEST_CONTENT_DIR"`
	ImagesDirectory  string `env:"NOTION_INGEST_IMAGES_DIR"`
	TemplatePath     string `env:"NOTION_INGEST_TEMPLATE"`
	SettingsPath     string `env:"NOTION_INGEST_SETTINGS"`
}

// LoadSettings builds settings from the embedded defaults, the optional settings
// file and the environment, in that order.
func LoadSettings(settingsPath string) (*Settings, error) {
	var overrides EnvOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	settings, err := parseSettings([]byte(defaultSettings))
	if err != nil {
		return nil, fmt.Errorf("parsing embedded settings: %w", err)
	}

	if settingsPath == "" {
		settingsPath = overrides.SettingsPath
	}
	if settingsPath == "" {
		settingsPath = GetConfigPath("settings.yaml")
	}

	data, err := os.ReadFile(settingsPath)
	switch {
	case err == nil:
		// Settings file replaces embedded defaults field by field
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	settings.applyEnv(overrides)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return settings, nil
}

func parseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) applyEnv(overrides EnvOverrides) {
	if overrides.SourceDirectory != "" {
		s.SourceDirectory = overrides.SourceDirectory
	}
	if overrides.ContentDirectory != "" {
		s.ContentDirectory = overrides.ContentDirectory
	}
	if overrides.ImagesDirectory != "" {
		s.ImagesDirectory = overrides.ImagesDirectory
	}
	if overrides.TemplatePath != "" {
		s.TemplatePath = overrides.TemplatePath
	}
}

// Validate checks the settings and compiles the ignore patterns.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.SourceDirectory) == "" {
		return ErrMissingSourceDirectory
	}
	if strings.TrimSpace(s.ContentDirectory) == "" {
		return ErrMissingContentDirectory
	}
	if strings.TrimSpace(s.ImagesDirectory) == "" {
		return ErrMissingImagesDirectory
	}
	if s.DefaultLang == "" {
		return ErrMissingDefaultLang
	}
	for _, lang := range s.TranslationLangs {
		if lang == s.DefaultLang {
			return fmt.Errorf("%w: %s", ErrDuplicateLang, lang)
		}
	}

	for _, list := range [][]string{s.ImageExtensions, s.CoverExtensions, s.OtherExtensions} {
		for _, ext := range list {
			if !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
			}
		}
	}

	available := make(map[string]bool, len(s.AvailableTags))
	for _, tag := range s.AvailableTags {
		available[tag] = true
	}
	for slug, tags := range s.ProjectTags {
		for _, tag := range tags {
			if !available[tag] {
				return fmt.Errorf("%w: %s (project %s)", ErrUnknownTag, tag, slug)
			}
		}
	}

	s.ignore = s.ignore[:0]
	for _, pattern := range s.IgnorePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, pattern, err)
		}
		s.ignore = append(s.ignore, re)
	}

	return nil
}

// IsIgnored reports whether a file or directory name matches an ignore pattern
func (s *Settings) IsIgnored(name string) bool {
	for _, re := range s.ignore {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// TagsFor returns the tags configured for a slug, or an empty list
func (s *Settings) TagsFor(slug string) []string {
	tags, ok := s.ProjectTags[slug]
	if !ok {
		return []string{}
	}
	return append([]string(nil), tags...)
}

// IsImage reports whether ext (lowercase, with dot) is a supported image type
func (s *Settings) IsImage(ext string) bool {
	return containsFold(s.ImageExtensions, ext)
}

// IsCoverCandidate reports whether ext can be used as a cover image
func (s *Settings) IsCoverCandidate(ext string) bool {
	return s.IsImage(ext) && containsFold(s.CoverExtensions, ext)
}

// IsOtherFile reports whether ext is a supported non-image asset type
func (s *Settings) IsOtherFile(ext string) bool {
	return containsFold(s.OtherExtensions, ext)
}

// ContentPath returns the output path of a document for a locale
func (s *Settings) ContentPath(lang, slug string) string {
	return filepath.Join(s.ContentDirectory, lang, slug+".md")
}

// AssetDir returns the output directory of a document's assets
func (s *Settings) AssetDir(slug string) string {
	return filepath.Join(s.ImagesDirectory, slug)
}

// AssetURL returns the site-rooted URL of a copied asset
func (s *Settings) AssetURL(slug, name string) string {
	prefix := strings.TrimRight(s.ImagesURLPrefix, "/")
	return prefix + "/" + slug + "/" + name
}

// GetTemplate returns the template (from override file or embedded)
func (s *Settings) GetTemplate() (string, error) {
	if s.TemplatePath == "" {
		return defaultTemplate, nil
	}
	content, err := os.ReadFile(s.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", s.TemplatePath, err)
	}
	return string(content), nil
}

// GetConfigPath returns the path to a config file in the config directory
func GetConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists creates the config directory and writes the default settings if missing
func ensureConfigExists() (string, error) {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	settingsFile := GetConfigPath("settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettings), 0644); err != nil {
			return "", fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return settingsFile, nil
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
