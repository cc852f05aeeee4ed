package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
)

// MockClient produces deterministic pseudo-random unit vectors seeded from
// the text itself, so the same text always maps to the same vector. It never
// fails, which makes it the terminal fallback in the embedding chain.
type MockClient struct {
	Dimension int
}

func NewMockClient(dimension int) *MockClient {
	if dimension <= 0 {
		dimension = 1536
	}
	return &MockClient{Dimension: dimension}
}

func (c *MockClient) GetEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = c.embed(text)
	}
	return out, nil
}

func (c *MockClient) embed(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float32, c.Dimension)
	var norm float64
	for i := range vec {
		v := rng.Float64()*2 - 1
		vec[i] = float32(v)
		norm += v * v
	}

	// Normalize so cosine scores stay comparable to real embeddings.
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}
