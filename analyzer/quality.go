package analyzer

import (
	"strings"

	"curator/chunker"
	"curator/pkg/textutil"
)

// QualityReport breaks a score down into the metrics behind it.
type QualityReport struct {
	WordCount         int
	VocabRichness     float64
	SentenceCount     int
	AvgSentenceLength float64
	Score             float64
}

// ScoreContent rates article text on a 1-10 scale from three word-frequency
// heuristics: length, vocabulary richness and sentence shape.
func ScoreContent(text string) QualityReport {
	words := strings.Fields(text)
	wordCount := len(words)
	if wordCount == 0 {
		return QualityReport{Score: 1}
	}

	unique := make(map[string]struct{}, wordCount)
	for _, w := range textutil.Tokenize(text) {
		unique[w] = struct{}{}
	}
	richness := float64(len(unique)) / float64(wordCount)

	sentences := chunker.SplitSentences(text)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	avgSentenceLength := float64(wordCount) / float64(sentenceCount)

	blend := 0.50*lengthScore(wordCount) +
		0.30*richnessScore(richness) +
		0.20*sentenceScore(sentenceCount, avgSentenceLength)

	return QualityReport{
		WordCount:         wordCount,
		VocabRichness:     richness,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: avgSentenceLength,
		Score:             1 + 9*blend,
	}
}

func lengthScore(wordCount int) float64 {
	switch {
	case wordCount < 100:
		return 0.0
	case wordCount < 200:
		return 0.5
	case wordCount > 10000:
		return 0.7
	default:
		return 1.0
	}
}

func richnessScore(richness float64) float64 {
	switch {
	case richness < 0.25:
		return 0.0
	case richness > 0.6:
		return 0.8
	default:
		return 1.0
	}
}

func sentenceScore(sentenceCount int, avgSentenceLength float64) float64 {
	if sentenceCount < 5 {
		return 0.0
	}
	if avgSentenceLength < 10 || avgSentenceLength > 30 {
		return 0.7
	}
	return 1.0
}
