package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"curator/pkg/embedding"
	"curator/repository"
)

// FileStore keeps vector records in memory backed by a JSON file. Records
// whose vector length differs from the store's dimension are dropped at load
// time; the dimension is declared by the first valid record when Init was
// given none.
type FileStore struct {
	path string

	mu        sync.RWMutex
	records   []repository.VectorRecord
	index     map[string]int
	dimension int
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:  path,
		index: make(map[string]int),
	}
}

func (s *FileStore) Name() string { return "file" }

// Init loads the backing file when present. A missing file is an empty
// store, not an error.
func (s *FileStore) Init(_ context.Context, dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dimension = dimension
	s.records = nil
	s.index = make(map[string]int)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read vector file: %w", err)
	}

	var raw []repository.VectorRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse vector file: %w", err)
	}

	for _, rec := range raw {
		if !s.valid(rec) {
			continue
		}
		if s.dimension == 0 {
			s.dimension = len(rec.Vector)
		}
		s.append(rec)
	}
	return nil
}

// valid filters malformed persisted records: missing fields or a vector
// length that disagrees with the declared dimension.
func (s *FileStore) valid(rec repository.VectorRecord) bool {
	if rec.ID == "" || rec.Content == "" || len(rec.Vector) == 0 {
		return false
	}
	if s.dimension != 0 && len(rec.Vector) != s.dimension {
		return false
	}
	return true
}

func (s *FileStore) append(rec repository.VectorRecord) {
	if i, ok := s.index[rec.ID]; ok {
		s.records[i] = rec
		return
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
}

func (s *FileStore) Upsert(_ context.Context, records []repository.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if !s.valid(rec) {
			continue
		}
		if s.dimension == 0 {
			s.dimension = len(rec.Vector)
		}
		s.append(rec)
	}
	return s.flush()
}

// flush writes the full record list atomically: temp file then rename.
// Callers hold the lock.
func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create vector file directory: %w", err)
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vector records: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vector file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Search ranks every stored record by cosine similarity against the query
// vector. Ties keep input order; k larger than the store returns everything.
func (s *FileStore) Search(_ context.Context, vector []float32, k int) ([]repository.ScoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]repository.ScoredRecord, 0, len(s.records))
	for _, rec := range s.records {
		scored = append(scored, repository.ScoredRecord{
			VectorRecord: rec,
			Score:        embedding.CosineSimilarity(vector, rec.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}

func (s *FileStore) All(_ context.Context) ([]repository.VectorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repository.VectorRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *FileStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Dimension reports the declared vector length, 0 when the store is empty.
func (s *FileStore) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}

func (s *FileStore) Close() error { return nil }
