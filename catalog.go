package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/mattn/go-runewidth"
)

const titleColumnWidth = 48

// ProjectMeta is the front-matter of a generated project page
type ProjectMeta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Cover       string   `yaml:"cover"`
	Lang        string   `yaml:"lang"`
	Draft       bool     `yaml:"draft"`
	Year        int      `yaml:"year"`
}

// ReadProjectFile parses a generated project page into its metadata and body
func ReadProjectFile(path string) (*ProjectMeta, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	var meta ProjectMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, "", fmt.Errorf("parsing front-matter of %s: %w", path, err)
	}
	return &meta, string(body), nil
}

// projectYear returns the explicit year, or the year found in the date field
func projectYear(meta *ProjectMeta) int {
	if meta.Year > 0 {
		return meta.Year
	}
	if len(meta.Date) >= 4 {
		if year, err := strconv.Atoi(meta.Date[:4]); err == nil {
			return year
		}
	}
	return 0
}

// LoadProjects reads every generated page of a locale, ordered by slug
func LoadProjects(contentDir, lang string) ([]Project, error) {
	paths, err := filepath.Glob(filepath.Join(contentDir, lang, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	projects := make([]Project, 0, len(paths))
	for _, path := range paths {
		meta, _, err := ReadProjectFile(path)
		if err != nil {
			return nil, err
		}

		projectLang := meta.Lang
		if projectLang == "" {
			projectLang = lang
		}
		projects = append(projects, Project{
			Slug:  strings.TrimSuffix(filepath.Base(path), ".md"),
			Title: meta.Title,
			Tags:  meta.Tags,
			Year:  projectYear(meta),
			Lang:  projectLang,
			Draft: meta.Draft,
		})
	}
	return projects, nil
}

// WriteProjectTable prints projects as aligned columns
func WriteProjectTable(w io.Writer, projects []Project) {
	for _, p := range projects {
		year := "----"
		if p.Year > 0 {
			year = strconv.Itoa(p.Year)
		}
		title := runewidth.Truncate(p.Title, titleColumnWidth, "…")
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			year,
			runewidth.FillRight(title, titleColumnWidth),
			ProjectPath(p.Slug, p.Lang),
			strings.Join(p.Tags, ", "),
		)
	}
}
