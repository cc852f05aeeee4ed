package embedding

import (
	"context"
	"math"
)

type EmbeddingRequest struct {
	Inputs []string `json:"inputs"`
	Model  string   `json:"model,omitempty"`
}

type EmbeddingResponse [][]float32

// Client turns texts into embedding vectors, one vector per input text, in
// input order.
type Client interface {
	GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

const cosineEpsilon = 1e-10

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Mismatched lengths score 0. A zero vector on either side scores
// -1 so degenerate records never rank ahead of real ones.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return -1
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}
