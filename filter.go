package main

import "sort"

// Project is a listing entry of the project grid
type Project struct {
	Slug  string
	Title string
	Tags  []string
	Year  int
	Lang  string
	Draft bool
}

// YearCount is the number of projects in a given year
type YearCount struct {
	Year  int
	Count int
}

// FilterProjects restricts projects to a year (when set) and to those having
// at least one selected tag (when any), most matching tags first. Ties keep
// their original order.
func FilterProjects(projects []Project, year *int, selectedTags []string) []Project {
	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if year != nil && p.Year != *year {
			continue
		}
		filtered = append(filtered, p)
	}

	if len(selectedTags) == 0 {
		return filtered
	}

	matched := filtered[:0]
	for _, p := range filtered {
		if matchingTags(p, selectedTags) > 0 {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matchingTags(matched[i], selectedTags) > matchingTags(matched[j], selectedTags)
	})
	return matched
}

// matchingTags counts the selected tags present on p
func matchingTags(p Project, selectedTags []string) int {
	count := 0
	for _, tag := range selectedTags {
		for _, own := range p.Tags {
			if own == tag {
				count++
				break
			}
		}
	}
	return count
}

// TagCounts returns how many projects carry each available tag
func TagCounts(projects []Project, availableTags []string) map[string]int {
	counts := make(map[string]int, len(availableTags))
	for _, tag := range availableTags {
		counts[tag] = 0
		for _, p := range projects {
			if matchingTags(p, []string{tag}) > 0 {
				counts[tag]++
			}
		}
	}
	return counts
}

// UsedTags returns the available tags used by at least one project, most used first
func UsedTags(availableTags []string, counts map[string]int) []string {
	var used []string
	for _, tag := range availableTags {
		if counts[tag] > 0 {
			used = append(used, tag)
		}
	}
	sort.SliceStable(used, func(i, j int) bool {
		return counts[used[i]] > counts[used[j]]
	})
	return used
}

// YearCounts groups projects by year, newest first. Projects without a year are skipped.
func YearCounts(projects []Project) []YearCount {
	byYear := make(map[int]int)
	for _, p := range projects {
		if p.Year > 0 {
			byYear[p.Year]++
		}
	}

	counts := make([]YearCount, 0, len(byYear))
	for year, count := range byYear {
		counts = append(counts, YearCount{Year: year, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Year > counts[j].Year
	})
	return counts
}

// ProjectPath returns the site path of a project page
func ProjectPath(slug, lang string) string {
	if lang == "fr" {
		return "/fr/projets/" + slug
	}
	return "/" + lang + "/projects/" + slug
}
