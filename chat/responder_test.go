package chat

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"curator/pkg/embedding"
	"curator/repository"
	"curator/retrieval"
	"curator/vectorstore"
)

type stubEmbedder struct {
	vec []float32
}

func (s stubEmbedder) GetEmbeddings(context.Context, []string) ([][]float32, error) {
	return [][]float32{s.vec}, nil
}

type failingEmbedder struct{}

func (failingEmbedder) GetEmbeddings(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding service unreachable")
}

type stubGenerator struct {
	answer string
	err    error
}

func (s stubGenerator) Generate(context.Context, string) (string, error) {
	return s.answer, s.err
}

func testResponder(t *testing.T, gen Generator) (*Responder, Memory) {
	t.Helper()
	return testResponderWith(t, gen, stubEmbedder{vec: []float32{1, 0}})
}

func testResponderWith(t *testing.T, gen Generator, embedder embedding.Client, baseFallbacks ...string) (*Responder, Memory) {
	t.Helper()

	store := vectorstore.NewFileStore(filepath.Join(t.TempDir(), "vectors.json"))
	if err := store.Init(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	err := store.Upsert(context.Background(), []repository.VectorRecord{
		{ID: "a", Vector: []float32{1, 0}, Content: "ML basics",
			Metadata: repository.ChunkMetadata{Title: "Intro to ML"}},
		{ID: "b", Vector: []float32{0, 1}, Content: "unrelated",
			Metadata: repository.ChunkMetadata{Title: "Other"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	ranker := retrieval.NewRanker(store, embedder, 2, zap.NewNop())
	memory := NewInMemory(12, 100000, 100)
	return NewResponder(ranker, memory, gen, 1, zap.NewNop(), baseFallbacks...), memory
}

func TestResponderHappyPath(t *testing.T) {
	responder, memory := testResponder(t, stubGenerator{answer: "ML stands for machine learning."})

	reply, err := responder.Respond(context.Background(), "conv-1", "what is ml?")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if reply.Response != "ML stands for machine learning." {
		t.Errorf("unexpected response: %s", reply.Response)
	}
	if reply.Degraded {
		t.Error("healthy path should not be degraded")
	}
	if len(reply.Sources) != 1 || reply.Sources[0] != "Intro to ML" {
		t.Errorf("unexpected sources: %v", reply.Sources)
	}
	if reply.ContextUsed != 1 {
		t.Errorf("expected 1 context chunk, got %d", reply.ContextUsed)
	}

	history := memory.History("conv-1")
	if len(history) != 1 {
		t.Fatalf("expected 1 recorded turn, got %d", len(history))
	}
	if history[0].Query != "what is ml?" {
		t.Errorf("turn should record the raw query, got %q", history[0].Query)
	}
}

func TestResponderGenerationFallback(t *testing.T) {
	responder, _ := testResponder(t, stubGenerator{err: errors.New("model unreachable")})

	reply, err := responder.Respond(context.Background(), "conv-1", "what is ml?")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if !reply.Degraded {
		t.Error("generation failure must flag the reply degraded")
	}
	found := false
	for _, f := range reply.Fallbacks {
		if f == "mock-generation" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected mock-generation fallback, got %v", reply.Fallbacks)
	}
	if !strings.Contains(reply.Response, "Intro to ML") {
		t.Errorf("mock answer should cite context titles, got %q", reply.Response)
	}
}

func TestResponderEmbeddingOutageFallsBackToLexical(t *testing.T) {
	responder, _ := testResponderWith(t, stubGenerator{answer: "an answer"}, failingEmbedder{})

	reply, err := responder.Respond(context.Background(), "conv-1", "what is ml basics?")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if !reply.Degraded {
		t.Error("an embedding outage must flag the reply degraded")
	}
	found := false
	for _, f := range reply.Fallbacks {
		if f == "lexical-scoring" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected lexical-scoring fallback, got %v", reply.Fallbacks)
	}
	if len(reply.Sources) != 1 || reply.Sources[0] != "Intro to ML" {
		t.Errorf("lexical scoring should still surface the matching article, got %v", reply.Sources)
	}
}

func TestResponderReportsConfiguredFallbacks(t *testing.T) {
	responder, _ := testResponderWith(t, stubGenerator{answer: "an answer"},
		stubEmbedder{vec: []float32{1, 0}}, "mock-embeddings", "file-store")

	reply, err := responder.Respond(context.Background(), "conv-1", "what is ml?")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if !reply.Degraded {
		t.Error("configured fallbacks must mark the reply degraded")
	}
	for _, want := range []string{"mock-embeddings", "file-store"} {
		found := false
		for _, f := range reply.Fallbacks {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in fallbacks, got %v", want, reply.Fallbacks)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	records := []repository.ScoredRecord{
		{VectorRecord: repository.VectorRecord{Content: "chunk text",
			Metadata: repository.ChunkMetadata{Title: "Title A"}}, Score: 0.9},
	}
	recent := []repository.Turn{{Query: "earlier question", Response: "earlier answer"}}

	prompt := BuildPrompt(records, recent, "current question")

	for _, want := range []string{"[1] Title A", "chunk text", "earlier question", "earlier answer", "Question: current question"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestMockGeneratorWithoutContext(t *testing.T) {
	prompt := BuildPrompt(nil, nil, "anything")
	answer, err := NewMockGenerator().Generate(context.Background(), prompt)
	if err != nil {
		t.Fatalf("mock generator must not fail: %v", err)
	}
	if !strings.Contains(answer, "could not find") {
		t.Errorf("expected empty-context message, got %q", answer)
	}
}
