package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"curator/repository"
	"curator/retrieval"
)

// Generator produces an answer for a fully rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Reply is the responder's output, including degradation markers so callers
// can tell a fully functional answer from a fallback one.
type Reply struct {
	Response    string
	Sources     []string
	ContextUsed int
	Degraded    bool
	Fallbacks   []string
}

// Responder ties retrieval, conversation memory and generation together for
// one chat exchange.
type Responder struct {
	ranker        *retrieval.Ranker
	memory        Memory
	generator     Generator
	mock          *MockGenerator
	topK          int
	logger        *zap.Logger
	baseFallbacks []string
}

// NewResponder builds a responder. baseFallbacks names the degraded
// strategies already in effect at startup (mock embeddings, a file-backed
// store); every reply carries them in addition to per-request fallbacks.
func NewResponder(ranker *retrieval.Ranker, memory Memory, generator Generator, topK int, logger *zap.Logger, baseFallbacks ...string) *Responder {
	return &Responder{
		ranker:        ranker,
		memory:        memory,
		generator:     generator,
		mock:          NewMockGenerator(),
		topK:          topK,
		logger:        logger,
		baseFallbacks: baseFallbacks,
	}
}

// Respond answers one user message within a conversation.
func (r *Responder) Respond(ctx context.Context, conversationID, message string) (Reply, error) {
	recent := r.memory.Recent(conversationID, 3)
	recentQueries := make([]string, 0, len(recent))
	for _, t := range recent {
		recentQueries = append(recentQueries, t.Query)
	}

	normalized := retrieval.Normalize(message, recentQueries)

	result, err := r.ranker.Search(ctx, normalized, r.topK)
	if err != nil {
		return Reply{}, fmt.Errorf("retrieval failed: %w", err)
	}

	fallbacks := append([]string(nil), r.baseFallbacks...)
	if result.Degraded {
		fallbacks = append(fallbacks, "lexical-scoring")
	}

	prompt := BuildPrompt(result.Records, recent, message)

	answer, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		r.logger.Warn("generation failed, using mock response",
			zap.String("conversation", conversationID),
			zap.Error(err))
		answer, _ = r.mock.Generate(ctx, prompt)
		fallbacks = append(fallbacks, "mock-generation")
	}

	sources := sourceTitles(result.Records)
	r.memory.Append(conversationID, repository.Turn{
		Timestamp:   time.Now(),
		Query:       message,
		Response:    answer,
		ContextUsed: len(result.Records),
		Sources:     sources,
	})

	return Reply{
		Response:    answer,
		Sources:     sources,
		ContextUsed: len(result.Records),
		Degraded:    len(fallbacks) > 0,
		Fallbacks:   fallbacks,
	}, nil
}

// BuildPrompt renders retrieved chunks and recent turns around the user
// question.
func BuildPrompt(records []repository.ScoredRecord, recent []repository.Turn, message string) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant answering questions from a curated article collection.\n")
	b.WriteString("Use only the context below. Say so when the context does not cover the question.\n\n")

	if len(records) > 0 {
		b.WriteString("Context:\n")
		for i, rec := range records {
			fmt.Fprintf(&b, "[%d] %s\n%s\n\n", i+1, rec.Metadata.Title, rec.Content)
		}
	} else {
		b.WriteString("Context: (no relevant articles found)\n\n")
	}

	if len(recent) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, t := range recent {
			fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", t.Query, t.Response)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Question: %s\nAnswer:", message)
	return b.String()
}

func sourceTitles(records []repository.ScoredRecord) []string {
	seen := make(map[string]bool)
	var titles []string
	for _, rec := range records {
		title := rec.Metadata.Title
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	return titles
}
