package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort int

	// Interchange files shared between pipeline runs.
	SeedFilePath      string
	ContentFilePath   string
	VectorFilePath    string
	ReadinessFilePath string
	VisitedDBPath     string

	// Analyzer.
	FetchDelay      time.Duration
	MinQualityScore float64

	// Chunking.
	ChunkMethod       string
	ChunkMaxWords     int
	ChunkKeywords     int
	MarkdownChunkSize int

	// Embedding.
	EmbeddingURL   string
	EmbeddingModel string
	EmbeddingDim   int
	MockEmbeddings bool

	// Vector store.
	QdrantHost string
	QdrantPort int

	// Generation.
	AWSRegion      string
	BedrockModelID string
	MockGeneration bool

	// Retrieval and memory.
	TopK              int
	MaxTurns          int
	MemoryTokenBudget int
	MaxConversations  int
}

// Load reads configuration from the environment. A .env file is applied
// first when present so local runs don't need exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	appPort, err := intEnv("APP_PORT", 3000)
	if err != nil {
		return nil, err
	}
	qdrantPort, err := intEnv("QDRANT_PORT", 6334)
	if err != nil {
		return nil, err
	}
	embeddingDim, err := intEnv("EMBEDDING_DIM", 1536)
	if err != nil {
		return nil, err
	}
	chunkMaxWords, err := intEnv("CHUNK_MAX_WORDS", 500)
	if err != nil {
		return nil, err
	}
	chunkKeywords, err := intEnv("CHUNK_KEYWORDS", 5)
	if err != nil {
		return nil, err
	}
	mdChunkSize, err := intEnv("MARKDOWN_CHUNK_SIZE", 2500)
	if err != nil {
		return nil, err
	}
	topK, err := intEnv("TOP_K", 3)
	if err != nil {
		return nil, err
	}
	maxTurns, err := intEnv("MAX_TURNS", 12)
	if err != nil {
		return nil, err
	}
	tokenBudget, err := intEnv("MEMORY_TOKEN_BUDGET", 4000)
	if err != nil {
		return nil, err
	}
	maxConversations, err := intEnv("MAX_CONVERSATIONS", 1000)
	if err != nil {
		return nil, err
	}
	fetchDelayMs, err := intEnv("FETCH_DELAY_MS", 1000)
	if err != nil {
		return nil, err
	}
	minQuality, err := floatEnv("MIN_QUALITY_SCORE", 6.0)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:           appPort,
		SeedFilePath:      getEnv("SEED_FILE", "data/seeds.yaml"),
		ContentFilePath:   getEnv("CONTENT_FILE", "data/analyzed_content.json"),
		VectorFilePath:    getEnv("VECTOR_FILE", "data/vector_store.json"),
		ReadinessFilePath: getEnv("READINESS_FILE", "data/store_ready.json"),
		VisitedDBPath:     getEnv("VISITED_DB", "data/visited.db"),
		FetchDelay:        time.Duration(fetchDelayMs) * time.Millisecond,
		MinQualityScore:   minQuality,
		ChunkMethod:       getEnv("CHUNK_METHOD", "sentence"),
		ChunkMaxWords:     chunkMaxWords,
		ChunkKeywords:     chunkKeywords,
		MarkdownChunkSize: mdChunkSize,
		EmbeddingURL:      getEnv("EMBEDDING_URL", ""),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "amazon.titan-embed-text-v1"),
		EmbeddingDim:      embeddingDim,
		MockEmbeddings:    boolEnv("MOCK_EMBEDDINGS", true),
		QdrantHost:        getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:        qdrantPort,
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		BedrockModelID:    getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		MockGeneration:    boolEnv("MOCK_GENERATION", true),
		TopK:              topK,
		MaxTurns:          maxTurns,
		MemoryTokenBudget: tokenBudget,
		MaxConversations:  maxConversations,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
