package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// TranslationRequest is the content sent for translation
type TranslationRequest struct {
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// Translation is the structured response of the translator
type Translation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// Translator translates a project page
type Translator interface {
	Translate(req TranslationRequest) (*Translation, error)
}

// ClaudeTranslator translates with the Anthropic API using structured output
type ClaudeTranslator struct {
	apiKey   string
	settings TranslatorSettings
}

// NewClaudeTranslator creates a translator for the given API key
func NewClaudeTranslator(apiKey string, settings TranslatorSettings) (*ClaudeTranslator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
	}
	return &ClaudeTranslator{apiKey: apiKey, settings: settings}, nil
}

// Translate sends the page to the model and parses its JSON answer
func (t *ClaudeTranslator) Translate(req TranslationRequest) (*Translation, error) {
	systemPrompt, err := buildTranslatorPrompt(translatorSystemPrompt, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling translation request: %w", err)
	}

	settings := types.RequestSettings{
		Model:       t.settings.Model,
		MaxTokens:   t.settings.MaxTokens,
		Temperature: t.settings.Temperature,
	}
	response, err := anthropic.PromptWithSettings(systemPrompt, string(payload), translationSchema, t.apiKey, settings)
	if err != nil {
		return nil, fmt.Errorf("translator agent failed: %w", err)
	}

	if len(response.Content) == 0 {
		return nil, fmt.Errorf("no content in translator response")
	}

	return parseTranslation(response.Content[0].Text)
}

// buildTranslatorPrompt fills the language variables of the system prompt
func buildTranslatorPrompt(template, sourceLang, targetLang string) (string, error) {
	for _, variable := range []string{"{{.source_lang}}", "{{.target_lang}}"} {
		if !strings.Contains(template, variable) {
			return "", fmt.Errorf("translator system prompt must contain %s variable", variable)
		}
	}
	prompt := strings.ReplaceAll(template, "{{.source_lang}}", sourceLang)
	return strings.ReplaceAll(prompt, "{{.target_lang}}", targetLang), nil
}

// translationValidator compiles the embedded response schema once
var translationValidator = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("translation-schema.json", strings.NewReader(translationSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("translation-schema.json")
})

func parseTranslation(text string) (*Translation, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse translator response: %w", err)
	}

	schema, err := translationValidator()
	if err != nil {
		return nil, fmt.Errorf("compiling translation schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("translator response does not match schema: %w", err)
	}

	var translation Translation
	if err := json.Unmarshal([]byte(text), &translation); err != nil {
		return nil, fmt.Errorf("failed to parse translator response: %w", err)
	}
	if strings.TrimSpace(translation.Title) == "" || strings.TrimSpace(translation.Body) == "" {
		return nil, errors.New("translator response is missing title or body")
	}
	return &translation, nil
}

// hasTranslationMarker reports whether a page body still starts with the marker
func hasTranslationMarker(body, marker string) bool {
	return marker != "" && strings.HasPrefix(strings.TrimLeft(body, "\n"), marker)
}

// stripTranslationMarker returns the body without the leading marker
func stripTranslationMarker(body, marker string) string {
	trimmed := strings.TrimLeft(body, "\n")
	if marker == "" || !strings.HasPrefix(trimmed, marker) {
		return body
	}
	return strings.TrimLeft(strings.TrimPrefix(trimmed, marker), "\n")
}

// PendingTranslations lists the pages of lang still carrying the marker
func PendingTranslations(settings *Settings, lang string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(settings.ContentDirectory, lang, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var pending []string
	for _, path := range paths {
		_, body, err := ReadProjectFile(path)
		if err != nil {
			return nil, err
		}
		if hasTranslationMarker(body, settings.TranslationMarker) {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

// TranslatePending translates every pending page of lang in place and
// returns the paths it translated. Failures are logged and skipped.
func TranslatePending(settings *Settings, translator Translator, lang string, dryRun bool) ([]string, error) {
	pending, err := PendingTranslations(settings, lang)
	if err != nil {
		return nil, err
	}

	renderer, err := NewDocumentRenderer(settings)
	if err != nil {
		return nil, err
	}

	var translated []string
	for i, path := range pending {
		log.Printf("[%d/%d] Translating: %s", i+1, len(pending), path)
		if dryRun {
			translated = append(translated, path)
			continue
		}

		if err := translateFile(settings, translator, renderer, path, lang); err != nil {
			log.Printf("✗ Failed %s: %v", path, err)
			continue
		}
		log.Printf("✓ Translated: %s", path)
		translated = append(translated, path)
	}
	return translated, nil
}

func translateFile(settings *Settings, translator Translator, renderer *DocumentRenderer, path, lang string) error {
	meta, body, err := ReadProjectFile(path)
	if err != nil {
		return err
	}

	translation, err := translator.Translate(TranslationRequest{
		SourceLang:  settings.DefaultLang,
		TargetLang:  lang,
		Title:       meta.Title,
		Description: meta.Description,
		Body:        stripTranslationMarker(body, settings.TranslationMarker),
	})
	if err != nil {
		return err
	}

	rendered, err := renderer.Render(&OutputDocument{
		Title:       translation.Title,
		Description: translation.Description,
		Date:        meta.Date,
		Tags:        meta.Tags,
		Cover:       meta.Cover,
		Lang:        lang,
		Draft:       meta.Draft,
		Body:        translation.Body,
	})
	if err != nil {
		return err
	}

	return writeDocument(path, rendered)
}
