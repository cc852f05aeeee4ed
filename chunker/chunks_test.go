package chunker

import (
	"strings"
	"testing"

	"curator/repository"
)

func TestBuilderBuild(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		sb.WriteString("Machine learning systems need training data and evaluation pipelines. ")
	}
	record := repository.ContentRecord{
		URL:          "https://example.com/ml",
		Title:        "ML Systems",
		Content:      sb.String(),
		WordCount:    600,
		QualityScore: 8.2,
	}

	chunks, err := NewBuilder(NewSentenceChunker(100), 3).Build(record)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for 600 words at budget 100, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.ID == "" {
			t.Error("chunk id must be set")
		}
		if c.Metadata.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, c.Metadata.ChunkIndex)
		}
		if c.Metadata.TotalChunks != len(chunks) {
			t.Errorf("chunk %d reports %d total chunks, want %d", i, c.Metadata.TotalChunks, len(chunks))
		}
		if c.Metadata.Title != "ML Systems" || c.Metadata.URL != "https://example.com/ml" {
			t.Error("chunk metadata must carry the source title and url")
		}
		if c.Metadata.QualityScore != 8.2 {
			t.Errorf("quality score not propagated: %f", c.Metadata.QualityScore)
		}
		if len(c.Metadata.Keywords) == 0 {
			t.Error("expected extracted keywords")
		}
	}
}

func TestBuilderEmptyContent(t *testing.T) {
	chunks, err := NewBuilder(NewSentenceChunker(100), 3).Build(repository.ContentRecord{
		URL: "https://example.com/empty",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("empty content must produce no chunks, got %d", len(chunks))
	}
}
