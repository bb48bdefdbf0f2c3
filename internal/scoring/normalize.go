package scoring

import (
	"regexp"
	"strings"
)

// tokenPattern matches words made of letters, digits, '+' and '#', so that
// "C++" and "C#" stay whole.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}+#]+`)

// Normalize trims and lower-cases text for case-insensitive matching.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// tokenSet returns the distinct tokens of already-normalized text.
func tokenSet(normalized string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(normalized, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// input is the per-request view every sub-scorer reads. It is built once by
// the analyzer and never mutated.
type input struct {
	resume         string // trimmed, original case
	resumeLower    string
	resumeTokens   map[string]struct{}
	jobDescription string // trimmed, original case; empty when absent
}

func newInput(resume, jobDescription string) *input {
	lower := Normalize(resume)
	return &input{
		resume:         strings.TrimSpace(resume),
		resumeLower:    lower,
		resumeTokens:   tokenSet(lower),
		jobDescription: strings.TrimSpace(jobDescription),
	}
}

func (in *input) hasJobDescription() bool {
	return in.jobDescription != ""
}
