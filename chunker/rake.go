package chunker

import (
	"sort"
	"strings"

	"curator/pkg/textutil"
)

// KeywordScore pairs a candidate phrase with its RAKE score.
type KeywordScore struct {
	Keyword string
	Score   float64
}

// RAKEExtractor scores candidate phrases by word degree/frequency. Word
// statistics are computed over stemmed forms so inflections of the same word
// reinforce each other, while the returned phrases keep their surface form.
type RAKEExtractor struct{}

func NewRAKEExtractor() *RAKEExtractor {
	return &RAKEExtractor{}
}

// ExtractKeywords returns up to topK phrases ordered by descending score.
func (r *RAKEExtractor) ExtractKeywords(text string, topK int) []string {
	phrases := r.candidatePhrases(text)
	if len(phrases) == 0 {
		return nil
	}

	wordScores := r.wordScores(phrases)
	scored := r.scorePhrases(phrases, wordScores)

	limit := topK
	if len(scored) < limit {
		limit = len(scored)
	}

	keywords := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		keywords = append(keywords, scored[i].Keyword)
	}
	return keywords
}

// candidatePhrases splits the token stream at stopwords; each maximal run of
// content words is one candidate.
func (r *RAKEExtractor) candidatePhrases(text string) []string {
	var phrases []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, strings.Join(current, " "))
			current = nil
		}
	}

	for _, word := range textutil.Tokenize(text) {
		if textutil.Stopwords[word] {
			flush()
			continue
		}
		if len(word) >= 2 {
			current = append(current, word)
		}
	}
	flush()

	return phrases
}

func (r *RAKEExtractor) wordScores(phrases []string) map[string]float64 {
	freq := make(map[string]int)
	degree := make(map[string]int)

	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		for _, word := range words {
			stem := textutil.Stem(word)
			freq[stem]++
			degree[stem] += len(words) - 1
		}
	}

	scores := make(map[string]float64, len(freq))
	for stem, f := range freq {
		scores[stem] = float64(degree[stem]+f) / float64(f)
	}
	return scores
}

func (r *RAKEExtractor) scorePhrases(phrases []string, wordScores map[string]float64) []KeywordScore {
	seen := make(map[string]bool)
	var scored []KeywordScore

	for _, phrase := range phrases {
		if seen[phrase] {
			continue
		}
		seen[phrase] = true

		var score float64
		for _, word := range strings.Fields(phrase) {
			score += wordScores[textutil.Stem(word)]
		}
		if score > 0 {
			scored = append(scored, KeywordScore{Keyword: phrase, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
