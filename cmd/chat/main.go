package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"curator/api"
	"curator/chat"
	"curator/config"
	"curator/pkg/embedding"
	"curator/retrieval"
	"curator/vectorstore"
)

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
	// Vector store + readiness
	// =========
	ctx := context.Background()
	readiness := vectorstore.ReadReadiness(cfg.ReadinessFilePath)
	store := vectorstore.Open(ctx, logger, cfg.QdrantHost, cfg.QdrantPort, cfg.VectorFilePath, 0)
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		logger.Warn("failed to count stored vectors", zap.Error(err))
	}
	ready := readiness.Ready && count > 0
	logger.Info("store status",
		zap.String("backend", store.Name()),
		zap.Int("records", count),
		zap.Bool("ready", ready))

	// =========
	// Embedding client
	// =========
	dimension := readiness.Dimension
	if dimension == 0 {
		dimension = cfg.EmbeddingDim
	}
	// No fallback chain here: an embedding outage must surface as an error so
	// the ranker switches to lexical scoring and flags the reply degraded.
	client, baseFallbacks := newEmbedder(cfg, dimension, logger)
	embedder := embedding.NewCachingClient(client)

	if store.Name() == "file" {
		baseFallbacks = append(baseFallbacks, "file-store")
	}

	// =========
	// Retrieval + memory + generation
	// =========
	ranker := retrieval.NewRanker(store, embedder, dimension, logger)
	memory := chat.NewInMemory(cfg.MaxTurns, cfg.MemoryTokenBudget, cfg.MaxConversations)
	responder := chat.NewResponder(ranker, memory, newGenerator(cfg, logger), cfg.TopK, logger, baseFallbacks...)

	// =========
	// HTTP
	// =========
	server := api.NewServer(responder, memory, ready, logger)
	if err := server.Start(cfg.AppPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newEmbedder(cfg *config.Config, dimension int, logger *zap.Logger) (embedding.Client, []string) {
	if cfg.MockEmbeddings || cfg.EmbeddingURL == "" {
		logger.Info("using mock embeddings", zap.Int("dimension", dimension))
		return embedding.NewMockClient(dimension), []string{"mock-embeddings"}
	}
	return embedding.NewTitanClient(cfg.EmbeddingURL, cfg.EmbeddingModel), nil
}

func newGenerator(cfg *config.Config, logger *zap.Logger) chat.Generator {
	if cfg.MockGeneration {
		logger.Info("using mock generation")
		return chat.NewMockGenerator()
	}

	gen, err := chat.NewBedrockGenerator(cfg.BedrockModelID)
	if err != nil {
		logger.Warn("bedrock unavailable, using mock generation", zap.Error(err))
		return chat.NewMockGenerator()
	}
	logger.Info("using bedrock generation",
		zap.String("model", cfg.BedrockModelID),
		zap.String("region", cfg.AWSRegion))
	return gen
}
