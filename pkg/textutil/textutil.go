// Package textutil holds the tokenization helpers shared by keyword
// extraction and retrieval scoring.
package textutil

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

var nonWord = regexp.MustCompile(`[^a-z0-9\s]+`)

// Stopwords is the fixed English stopword set used across the pipeline.
var Stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "by": true, "for": true, "from": true, "has": true,
	"he": true, "in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "that": true, "the": true, "to": true, "was": true, "will": true,
	"with": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "must": true, "this": true, "these": true,
	"they": true, "them": true, "their": true, "there": true, "then": true,
	"than": true, "or": true, "but": true, "not": true, "no": true, "nor": true,
	"so": true, "if": true, "do": true, "does": true, "did": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "which": true,
	"who": true, "why": true, "how": true, "about": true, "tell": true,
	"me": true, "i": true, "you": true, "we": true, "my": true, "your": true,
	"please": true, "want": true, "know": true, "more": true,
}

// Tokenize lowercases text, strips punctuation and returns its words.
func Tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// ContentWords tokenizes text and drops stopwords.
func ContentWords(text string) []string {
	var words []string
	for _, w := range Tokenize(text) {
		if !Stopwords[w] {
			words = append(words, w)
		}
	}
	return words
}

// Stem reduces a word to its English stem. The word itself is returned when
// stemming fails, so callers never lose a token.
func Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", false)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}
