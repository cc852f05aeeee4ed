package embedding

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestCosineSimilarity(t *testing.T) {
	testCases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"IdenticalVectors", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"NegatedVector", []float32{1, 0, -2}, []float32{-1, 0, 2}, -1.0},
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"ZeroVector", []float32{0, 0}, []float32{1, 1}, -1.0},
		{"LengthMismatch", []float32{1, 2}, []float32{1, 2, 3}, 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("expected %.6f, got %.6f", tc.want, got)
			}
		})
	}
}

func TestMockClientDeterministic(t *testing.T) {
	client := NewMockClient(64)

	first, err := client.GetEmbeddings(context.Background(), []string{"machine learning"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := client.GetEmbeddings(context.Background(), []string{"machine learning"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first[0]) != 64 {
		t.Fatalf("expected dimension 64, got %d", len(first[0]))
	}
	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("vectors differ at index %d", i)
		}
	}

	other, _ := client.GetEmbeddings(context.Background(), []string{"something else"})
	if CosineSimilarity(first[0], other[0]) > 0.999 {
		t.Error("distinct texts should not produce identical vectors")
	}
}

func TestMockClientUnitNorm(t *testing.T) {
	client := NewMockClient(128)
	vecs, _ := client.GetEmbeddings(context.Background(), []string{"any text"})

	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-4 {
		t.Errorf("expected unit norm, got %f", math.Sqrt(norm))
	}
}

type countingClient struct {
	calls int
	inner Client
}

func (c *countingClient) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	return c.inner.GetEmbeddings(ctx, texts)
}

func TestCachingClient(t *testing.T) {
	counting := &countingClient{inner: NewMockClient(16)}
	cached := NewCachingClient(counting)

	for i := 0; i < 3; i++ {
		if _, err := cached.GetEmbeddings(context.Background(), []string{"repeat query"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if counting.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", counting.calls)
	}
	if cached.Len() != 1 {
		t.Errorf("expected 1 cached entry, got %d", cached.Len())
	}
}

type failingClient struct{}

func (failingClient) GetEmbeddings(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("service unavailable")
}

func TestFallbackClient(t *testing.T) {
	fallback := NewFallbackClient(zap.NewNop(), failingClient{}, NewMockClient(8))

	vecs, err := fallback.GetEmbeddings(context.Background(), []string{"query"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs) != 1 || len(vecs[0]) != 8 {
		t.Fatalf("unexpected result shape: %d", len(vecs))
	}

	exhausted := NewFallbackClient(zap.NewNop(), failingClient{}, failingClient{})
	if _, err := exhausted.GetEmbeddings(context.Background(), []string{"query"}); err == nil {
		t.Error("expected the last error when every client fails")
	}
}

func TestFallbackClientConcurrentCalls(t *testing.T) {
	fallback := NewFallbackClient(zap.NewNop(), failingClient{}, NewMockClient(8))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fallback.GetEmbeddings(context.Background(), []string{"query"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}
