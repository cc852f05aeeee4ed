package repository

import "time"

// ContentRecord is one analyzed article, written by the analyzer and read by
// the embedding builder. Immutable once written.
type ContentRecord struct {
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	WordCount    int     `json:"wordCount"`
	QualityScore float64 `json:"qualityScore"`
}

// ChunkMetadata travels with every chunk into the vector store payload.
type ChunkMetadata struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	ChunkIndex   int      `json:"chunkIndex"`
	TotalChunks  int      `json:"totalChunks"`
	Keywords     []string `json:"keywords,omitempty"`
	QualityScore float64  `json:"qualityScore"`
}

// ChunkRecord is a bounded-size piece of a ContentRecord.
type ChunkRecord struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// VectorRecord pairs a chunk with its embedding. Every record in a single
// store must carry a vector of the same length.
type VectorRecord struct {
	ID       string        `json:"id"`
	Vector   []float32     `json:"vector"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ScoredRecord is a VectorRecord with a retrieval score attached.
type ScoredRecord struct {
	VectorRecord
	Score float64 `json:"score"`
}

// Turn is one query/response exchange within a conversation.
type Turn struct {
	Timestamp   time.Time `json:"timestamp"`
	Query       string    `json:"query"`
	Response    string    `json:"response"`
	ContextUsed int       `json:"contextUsed"`
	Sources     []string  `json:"sources"`
}
