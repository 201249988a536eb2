package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	sourceDir      string
	dryRun         bool
	verbose        bool
	apiKey         string
	projectsLang   string
	projectsYear   int
	projectsTags   []string
	translateLang  string
	showDraftPages bool
)

var rootCmd = &cobra.Command{
	Use:   "notion-ingest",
	Short: "Turn Notion exports into bilingual portfolio content",
	Long: `Converts exported Notion pages into project pages for the portfolio site:
front-matter, rewritten asset paths, copied assets, and a French page plus an
English placeholder for every export.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadCommandSettings()
		if err != nil {
			return err
		}
		if sourceDir != "" {
			settings.SourceDirectory = sourceDir
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\nNotion Export Ingestion")
		fmt.Fprintf(out, "Source: %s\n", settings.SourceDirectory)
		fmt.Fprintf(out, "Content output: %s\n", settings.ContentDirectory)
		fmt.Fprintf(out, "Images output: %s\n", settings.ImagesDirectory)
		if dryRun {
			fmt.Fprintln(out, "\nDRY RUN - no files will be written")
		}

		ingester, err := NewIngester(settings, Options{DryRun: dryRun, Verbose: verbose})
		if err != nil {
			return fmt.Errorf("creating ingester: %w", err)
		}

		summary, err := ingester.Run()
		if err != nil {
			return err
		}

		if len(summary.Results) == 0 {
			fmt.Fprintln(out, "\nNo markdown files found in source directory.")
			return nil
		}

		printSummary(out, settings, summary)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := ensureConfigExists()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Settings: %s\n", path)
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List generated projects with the grid's year and tag filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadCommandSettings()
		if err != nil {
			return err
		}

		lang := projectsLang
		if lang == "" {
			lang = settings.DefaultLang
		}

		projects, err := LoadProjects(settings.ContentDirectory, lang)
		if err != nil {
			return err
		}
		if !showDraftPages {
			projects = withoutDrafts(projects)
		}

		var year *int
		if cmd.Flags().Changed("year") {
			year = &projectsYear
		}

		out := cmd.OutOrStdout()
		counts := TagCounts(projects, settings.AvailableTags)
		for _, tag := range UsedTags(settings.AvailableTags, counts) {
			fmt.Fprintf(out, "%s (%d)  ", tag, counts[tag])
		}
		fmt.Fprintln(out)
		for _, yc := range YearCounts(projects) {
			fmt.Fprintf(out, "%d (%d)  ", yc.Year, yc.Count)
		}
		fmt.Fprintf(out, "\n\n")

		filtered := FilterProjects(projects, year, projectsTags)
		WriteProjectTable(out, filtered)
		fmt.Fprintf(out, "\n%d of %d project(s)\n", len(filtered), len(projects))
		return nil
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate placeholder pages that still carry the translation marker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadCommandSettings()
		if err != nil {
			return err
		}

		lang := translateLang
		if lang == "" && len(settings.TranslationLangs) > 0 {
			lang = settings.TranslationLangs[0]
		}
		if lang == "" || lang == settings.DefaultLang {
			return fmt.Errorf("no translation language to process")
		}

		// Get API key
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}

		var translator Translator
		if !dryRun {
			translator, err = NewClaudeTranslator(apiKey, settings.Translator)
			if err != nil {
				return err
			}
		}

		translated, err := TranslatePending(settings, translator, lang, dryRun)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nTranslated: %d page(s)\n", len(translated))
		return nil
	},
}

func init() {
	rootCmd.FParseErrWhitelist.UnknownFlags = true
	rootCmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Source directory of the Notion export")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed logs")

	projectsCmd.Flags().StringVar(&projectsLang, "lang", "", "Locale to list (defaults to default_lang)")
	projectsCmd.Flags().IntVar(&projectsYear, "year", 0, "Only list projects of this year")
	projectsCmd.Flags().StringSliceVar(&projectsTags, "tag", nil, "Only list projects with one of these tags (repeatable)")
	projectsCmd.Flags().BoolVar(&showDraftPages, "drafts", false, "Include draft pages")

	translateCmd.Flags().StringVar(&translateLang, "lang", "", "Locale to translate (defaults to the first translation_langs entry)")
	translateCmd.Flags().StringVar(&apiKey, "api-key", "", "Anthropic API key")

	rootCmd.AddCommand(initCmd, projectsCmd, translateCmd)
}

// loadCommandSettings loads .env, applies verbose mode and reads the settings
func loadCommandSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}
	SetDebugMode(verbose)

	settings, err := LoadSettings("")
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func withoutDrafts(projects []Project) []Project {
	published := make([]Project, 0, len(projects))
	for _, p := range projects {
		if !p.Draft {
			published = append(published, p)
		}
	}
	return published
}

func printSummary(w io.Writer, settings *Settings, summary *Summary) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 50))
	fmt.Fprintln(w, "✓ Ingestion complete")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "   Projects processed: %d\n", summary.Processed)
	if summary.Failed > 0 {
		fmt.Fprintf(w, "   Projects failed: %d\n", summary.Failed)
	}
	fmt.Fprintf(w, "   Assets copied: %d\n", summary.AssetsCount)
	fmt.Fprintln(w, "   Output locations:")
	langs := append([]string{settings.DefaultLang}, settings.TranslationLangs...)
	for _, lang := range langs {
		fmt.Fprintf(w, "     - Content (%s): %s/%s/\n", strings.ToUpper(lang), settings.ContentDirectory, lang)
	}
	fmt.Fprintf(w, "     - Images: %s/\n", settings.ImagesDirectory)
	fmt.Fprintln(w)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
