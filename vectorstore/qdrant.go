package vectorstore

import (
	"context"
	"fmt"

	"curator/pkg/qdrantdb"
	"curator/repository"
)

// scrollLimit caps how many records the lexical fallback pulls from Qdrant
// in one pass.
const scrollLimit = 4096

// QdrantStore adapts the Qdrant client to the Store interface.
type QdrantStore struct {
	client *qdrantdb.Client
}

func NewQdrantStore(client *qdrantdb.Client) *QdrantStore {
	return &QdrantStore{client: client}
}

func (s *QdrantStore) Name() string { return "qdrant" }

func (s *QdrantStore) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		// Opening for reads: the collection must already exist.
		if _, err := s.client.CountChunks(ctx); err != nil {
			return fmt.Errorf("chunk collection not reachable: %w", err)
		}
		return nil
	}
	return s.client.EnsureChunkCollection(ctx, dimension)
}

func (s *QdrantStore) Upsert(ctx context.Context, records []repository.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.client.UpsertChunks(ctx, records)
}

func (s *QdrantStore) Search(ctx context.Context, vector []float32, k int) ([]repository.ScoredRecord, error) {
	return s.client.QueryChunks(ctx, vector, k)
}

func (s *QdrantStore) All(ctx context.Context) ([]repository.VectorRecord, error) {
	return s.client.ScrollChunks(ctx, scrollLimit)
}

func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	return s.client.CountChunks(ctx)
}

func (s *QdrantStore) Close() error {
	return s.client.Close()
}
