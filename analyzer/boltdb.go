package analyzer

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocolly/colly/v2/storage"
	bolt "go.etcd.io/bbolt"
)

var visitedBucket = []byte("visited")

// VisitedStorage persists colly's visit log in bbolt so repeated analyzer
// runs skip pages that were already fetched.
type VisitedStorage struct {
	Path string

	db *bolt.DB
	mu sync.RWMutex
}

func (s *VisitedStorage) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create visited db directory: %w", err)
	}

	db, err := bolt.Open(s.Path, 0o600, nil)
	if err != nil {
		return fmt.Errorf("failed to open visited db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(visitedBucket)
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create visited bucket: %w", err)
	}

	s.db = db
	return nil
}

func (s *VisitedStorage) Visited(requestID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(visitedBucket).Put(visitKey(requestID), []byte{1})
	})
}

func (s *VisitedStorage) IsVisited(requestID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var visited bool
	err := s.db.View(func(tx *bolt.Tx) error {
		visited = tx.Bucket(visitedBucket).Get(visitKey(requestID)) != nil
		return nil
	})
	return visited, err
}

// Cookies and SetCookies satisfy colly's storage interface; the analyzer
// has no session state so cookies are not persisted.
func (s *VisitedStorage) Cookies(_ *url.URL) string { return "" }

func (s *VisitedStorage) SetCookies(_ *url.URL, _ string) {}

func (s *VisitedStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func visitKey(requestID uint64) []byte {
	return []byte(fmt.Sprintf("v:%d", requestID))
}

var _ storage.Storage = (*VisitedStorage)(nil)
