package scoring

import (
	"regexp"
	"strings"
)

// ActionVerbs is the canonical list the action-verb scanner looks for.
var ActionVerbs = []string{"led", "built", "created", "designed", "developed", "managed", "launched", "executed"}

var atsUnsafeMarkers = []string{"<table", "<img", "columns:"}

// Section is a canonical résumé section and the pattern that detects it.
type Section struct {
	Name    string
	Pattern *regexp.Regexp
}

var Sections = []Section{
	{Name: "Education", Pattern: regexp.MustCompile(`education|academic`)},
	{Name: "Work Experience", Pattern: regexp.MustCompile(`(work|professional)\s+experience`)},
	{Name: "Skills", Pattern: regexp.MustCompile(`skills`)},
	{Name: "Projects", Pattern: regexp.MustCompile(`projects?`)},
	{Name: "Contact", Pattern: regexp.MustCompile(`contact|email|phone`)},
}

var quantifiedImpact = regexp.MustCompile(`\d+(\.\d+)?\s?%|\$\s?\d|reduced\s+\d+(\.\d+)?\s?%`)

// CountActionVerbs counts the distinct canonical action verbs used as whole words.
func CountActionVerbs(resume string) int {
	return countActionVerbs(tokenSet(Normalize(resume)))
}

func countActionVerbs(tokens map[string]struct{}) int {
	count := 0
	for _, verb := range ActionVerbs {
		if _, ok := tokens[verb]; ok {
			count++
		}
	}
	return count
}

// IsATSSafe reports false when the text carries table, image or column layout markers.
func IsATSSafe(resume string) bool {
	lower := strings.ToLower(resume)
	for _, marker := range atsUnsafeMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// CountSections counts how many canonical sections are present, at most len(Sections).
func CountSections(resume string) int {
	lower := strings.ToLower(resume)
	count := 0
	for _, sec := range Sections {
		if sec.Pattern.MatchString(lower) {
			count++
		}
	}
	return count
}

// CountBonusSignals awards one point each for a project mention, an
// internship mention and a quantified impact (percentage or dollar amount).
func CountBonusSignals(resume string) int {
	lower := strings.ToLower(resume)
	points := 0
	if strings.Contains(lower, "project") {
		points++
	}
	if strings.Contains(lower, "internship") {
		points++
	}
	if quantifiedImpact.MatchString(lower) {
		points++
	}
	return points
}

func missingSections(lower string) []string {
	var missing []string
	for _, sec := range Sections {
		if !sec.Pattern.MatchString(lower) {
			missing = append(missing, sec.Name)
		}
	}
	return missing
}
