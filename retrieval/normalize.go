package retrieval

import (
	"strings"

	"curator/pkg/textutil"
)

// abbreviations maps common shorthand to its expanded form.
var abbreviations = map[string]string{
	"ml":  "machine learning",
	"ai":  "artificial intelligence",
	"dl":  "deep learning",
	"nlp": "natural language processing",
	"db":  "database",
	"k8s": "kubernetes",
	"llm": "large language model",
}

// minQueryTokens is the length below which recent conversation queries are
// appended as disambiguating context.
const minQueryTokens = 3

// maxContextTokens caps how many history tokens a short query absorbs.
const maxContextTokens = 6

// Normalize lowercases and trims the query, strips punctuation and
// stopwords, and expands known abbreviations. Queries shorter than three
// tokens absorb terms from recent conversation queries. Pure and idempotent:
// normalizing an already-normalized query returns it unchanged.
func Normalize(query string, recentQueries []string) string {
	tokens := normalizeTokens(query)

	if len(tokens) >= minQueryTokens || len(recentQueries) == 0 {
		return strings.Join(tokens, " ")
	}

	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		seen[tok] = true
	}

	// Newest conversation turns first.
	added := 0
	for i := len(recentQueries) - 1; i >= 0 && added < maxContextTokens; i-- {
		for _, tok := range normalizeTokens(recentQueries[i]) {
			if seen[tok] || added >= maxContextTokens {
				continue
			}
			seen[tok] = true
			tokens = append(tokens, tok)
			added++
		}
	}

	return strings.Join(tokens, " ")
}

func normalizeTokens(query string) []string {
	var tokens []string
	for _, tok := range textutil.Tokenize(query) {
		if textutil.Stopwords[tok] {
			continue
		}
		if expanded, ok := abbreviations[tok]; ok {
			tokens = append(tokens, strings.Fields(expanded)...)
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
