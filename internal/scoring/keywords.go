package scoring

// ExtractKeywords returns the distinct lower-cased tokens of a job description.
func ExtractKeywords(jobDescription string) map[string]struct{} {
	return tokenSet(Normalize(jobDescription))
}

// MatchCount counts how many distinct keywords occur in resume as whole words.
// Repeating a keyword in either text does not change the count.
func MatchCount(resume string, keywords map[string]struct{}) int {
	return matchTokens(tokenSet(Normalize(resume)), keywords)
}

func matchTokens(resumeTokens, keywords map[string]struct{}) int {
	count := 0
	for kw := range keywords {
		if _, ok := resumeTokens[kw]; ok {
			count++
		}
	}
	return count
}
