package search

import "strings"

// fallbackRationale is returned when the query and passage share no
// salient keywords.
const fallbackRationale = "strong semantic match to your description"

// keywordsPerText bounds how many top keywords each side contributes
// to the overlap check.
const keywordsPerText = 6

// Explain builds a short human-readable rationale for why a passage
// matched. queryKeywords are the query's top keywords (typically
// computed once per request); the overlap keeps their order. The
// rationale is presentation text only and plays no part in ranking.
func Explain(queryKeywords []string, passageText string) string {
	passageKeywords := make(map[string]bool)
	for _, keyword := range Keywords(passageText, keywordsPerText) {
		passageKeywords[keyword] = true
	}

	overlap := make([]string, 0, len(queryKeywords))
	for _, keyword := range queryKeywords {
		if passageKeywords[keyword] {
			overlap = append(overlap, keyword)
		}
	}

	if len(overlap) == 0 {
		return fallbackRationale
	}
	return "matches themes: " + strings.Join(overlap, ", ")
}
