package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"curator/analyzer"
	"curator/chunker"
	"curator/config"
	"curator/pipeline"
	"curator/pkg/embedding"
	"curator/repository"
	"curator/vectorstore"
)

// embedBatchSize bounds how many chunk texts go into one embedding call.
const embedBatchSize = 32

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Chunking
	// =========
	var splitter chunker.Splitter
	switch cfg.ChunkMethod {
	case "markdown":
		splitter = chunker.NewMarkdownChunker(cfg.MarkdownChunkSize)
	default:
		splitter = chunker.NewSentenceChunker(cfg.ChunkMaxWords)
	}
	builder := chunker.NewBuilder(splitter, cfg.ChunkKeywords)

	// =========
	// Embedding client
	// =========
	embedder := newEmbedder(cfg, logger)

	// =========
	// Vector store
	// =========
	ctx := context.Background()
	store := vectorstore.Open(ctx, logger, cfg.QdrantHost, cfg.QdrantPort, cfg.VectorFilePath, cfg.EmbeddingDim)
	defer store.Close()

	// =========
	// Pipeline
	// =========
	runner := pipeline.NewRunner(logger,
		pipeline.Stage{Name: "load_content", Run: func(_ context.Context, rc *pipeline.RunContext) error {
			records, err := analyzer.ReadContentRecords(cfg.ContentFilePath)
			if err != nil {
				return err
			}
			rc.Values["content"] = records
			rc.Stats["articles"] = len(records)
			return nil
		}},
		pipeline.Stage{Name: "chunk", Run: func(_ context.Context, rc *pipeline.RunContext) error {
			content, _ := rc.Values["content"].([]repository.ContentRecord)
			var chunks []repository.ChunkRecord
			for _, record := range content {
				cs, err := builder.Build(record)
				if err != nil {
					rc.Fail("chunk", err)
					continue
				}
				chunks = append(chunks, cs...)
			}
			rc.Values["chunks"] = chunks
			rc.Stats["chunks"] = len(chunks)
			return nil
		}},
		pipeline.Stage{Name: "embed", Run: func(ctx context.Context, rc *pipeline.RunContext) error {
			chunks, _ := rc.Values["chunks"].([]repository.ChunkRecord)
			vectors := embedChunks(ctx, rc, embedder, chunks)
			rc.Values["vectors"] = vectors
			rc.Stats["embedded"] = len(vectors)
			return nil
		}},
		pipeline.Stage{Name: "store", Run: func(ctx context.Context, rc *pipeline.RunContext) error {
			vectors, _ := rc.Values["vectors"].([]repository.VectorRecord)
			if err := store.Upsert(ctx, vectors); err != nil {
				return err
			}
			// The store drops malformed records, so count what actually landed.
			count, err := store.Count(ctx)
			if err != nil {
				return err
			}
			rc.Stats["stored"] = count
			return nil
		}},
		pipeline.Stage{Name: "mark_ready", Run: func(ctx context.Context, rc *pipeline.RunContext) error {
			count, err := store.Count(ctx)
			if err != nil {
				return err
			}
			return vectorstore.WriteReadiness(cfg.ReadinessFilePath, vectorstore.Readiness{
				Ready:     count > 0,
				Backend:   store.Name(),
				Records:   count,
				Dimension: cfg.EmbeddingDim,
				UpdatedAt: time.Now().UTC(),
			})
		}},
	)

	rc := runner.Run(ctx)
	runner.Report(rc)
}

// embedChunks turns chunk records into vector records batch by batch. A
// failed batch is recorded and skipped; the run keeps going.
func embedChunks(ctx context.Context, rc *pipeline.RunContext, embedder embedding.Client, chunks []repository.ChunkRecord) []repository.VectorRecord {
	var vectors []repository.VectorRecord

	for i := 0; i < len(chunks); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Content
		}

		embeddings, err := embedder.GetEmbeddings(ctx, texts)
		if err == nil && len(embeddings) != len(batch) {
			err = fmt.Errorf("got %d embeddings for %d chunks", len(embeddings), len(batch))
		}
		if err != nil {
			rc.Fail("embed", err)
			continue
		}

		for j, c := range batch {
			vectors = append(vectors, repository.VectorRecord{
				ID:       c.ID,
				Vector:   embeddings[j],
				Content:  c.Content,
				Metadata: c.Metadata,
			})
		}
	}
	return vectors
}

func newEmbedder(cfg *config.Config, logger *zap.Logger) embedding.Client {
	mock := embedding.NewMockClient(cfg.EmbeddingDim)
	if cfg.MockEmbeddings || cfg.EmbeddingURL == "" {
		logger.Info("using mock embeddings", zap.Int("dimension", cfg.EmbeddingDim))
		return mock
	}
	titan := embedding.NewTitanClient(cfg.EmbeddingURL, cfg.EmbeddingModel)
	return embedding.NewFallbackClient(logger, titan, mock)
}
