package search

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches alphabetic tokens with optional internal
// apostrophes, so "you're" stays one token.
var tokenPattern = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)?`)

// Minimal stop words for quick keyword overlap
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "i": true, "in": true, "is": true, "it": true,
	"its": true, "nor": true, "not": true, "of": true, "on": true, "or": true,
	"so": true, "that": true, "the": true, "their": true, "there": true,
	"these": true, "this": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "your": true, "you're": true, "you": true,
}

// Tokenize extracts lowercased alphabetic tokens from text.
func Tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(text, -1)
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return tokens
}

// Keywords returns the topK most frequent non-stop-word tokens in
// text. Ties rank in first-encountered order, so repeated calls over
// the same text are stable.
func Keywords(text string, topK int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, token := range Tokenize(text) {
		if stopWords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}
	if len(order) == 0 {
		return nil
	}

	// Stable sort by descending count keeps first-encountered order
	// among equal counts.
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked
}
