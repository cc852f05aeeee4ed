// Package vectorstore persists embedded chunks and serves similarity
// queries. The Qdrant backend is preferred; a JSON flat file backs it up so
// the pipeline still produces output with no store running.
package vectorstore

import (
	"context"

	"go.uber.org/zap"

	"curator/pkg/qdrantdb"
	"curator/repository"
)

// Store is the persistence surface shared by the Qdrant and file backends.
type Store interface {
	// Init prepares the backend for vectors of the given length.
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, records []repository.VectorRecord) error
	// Search returns up to k records ranked by cosine similarity.
	Search(ctx context.Context, vector []float32, k int) ([]repository.ScoredRecord, error)
	// All returns the stored records, used by the lexical fallback scorer.
	All(ctx context.Context) ([]repository.VectorRecord, error)
	Count(ctx context.Context) (int, error)
	Name() string
	Close() error
}

// Open tries Qdrant first and falls back to the JSON file store. The chosen
// backend is logged; callers treat both identically.
func Open(ctx context.Context, logger *zap.Logger, host string, port int, filePath string, dimension int) Store {
	client, err := qdrantdb.NewClient(host, port)
	if err == nil {
		qs := NewQdrantStore(client)
		if initErr := qs.Init(ctx, dimension); initErr == nil {
			logger.Info("vector store ready", zap.String("backend", qs.Name()))
			return qs
		} else {
			err = initErr
			client.Close()
		}
	}

	logger.Warn("qdrant unavailable, using file store",
		zap.String("host", host),
		zap.Int("port", port),
		zap.Error(err))

	fs := NewFileStore(filePath)
	if loadErr := fs.Init(ctx, dimension); loadErr != nil {
		logger.Warn("failed to load vector file", zap.String("path", filePath), zap.Error(loadErr))
	}
	return fs
}
