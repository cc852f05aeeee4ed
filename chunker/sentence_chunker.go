package chunker

import (
	"regexp"
	"strings"
)

// Splitter turns raw text into bounded-size chunk texts.
type Splitter interface {
	Split(text string) ([]string, error)
}

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// SentenceChunker accumulates whole sentences into chunks of at most
// maxWords words. A sentence is never split across chunks, so a single
// sentence longer than the budget becomes its own chunk. Text without any
// terminal punctuation falls back to fixed-width word slicing.
type SentenceChunker struct {
	maxWords int
}

func NewSentenceChunker(maxWords int) *SentenceChunker {
	if maxWords <= 0 {
		maxWords = 500
	}
	return &SentenceChunker{maxWords: maxWords}
}

func (c *SentenceChunker) Split(text string) ([]string, error) {
	if !sentencePattern.MatchString(text) {
		// No terminal punctuation anywhere, nothing to accumulate by sentence.
		return c.sliceWords(text), nil
	}
	sentences := SplitSentences(text)

	var chunks []string
	var current []string
	currentWords := 0

	for _, sentence := range sentences {
		words := len(strings.Fields(sentence))
		if currentWords+words > c.maxWords && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			currentWords = 0
		}
		current = append(current, sentence)
		currentWords += words
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks, nil
}

// SplitSentences splits text on terminal punctuation, keeping the
// terminators. A trailing fragment without punctuation is kept as its own
// sentence so no text is dropped.
func SplitSentences(text string) []string {
	matches := sentencePattern.FindAllStringIndex(text, -1)

	var sentences []string
	last := 0
	for _, m := range matches {
		s := strings.TrimSpace(text[m[0]:m[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = m[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// sliceWords is the no-punctuation fallback: fixed-width word windows.
func (c *SentenceChunker) sliceWords(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += c.maxWords {
		end := i + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
