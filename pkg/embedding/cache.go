package embedding

import (
	"context"
	"sync"
)

// CachingClient memoizes single-text embeddings keyed by the text itself.
// Batch requests bypass the cache; the chat path embeds one query at a time
// and is the only repeat caller.
type CachingClient struct {
	inner Client

	mu    sync.Mutex
	cache map[string][]float32
}

func NewCachingClient(inner Client) *CachingClient {
	return &CachingClient{
		inner: inner,
		cache: make(map[string][]float32),
	}
}

func (c *CachingClient) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return c.inner.GetEmbeddings(ctx, texts)
	}

	c.mu.Lock()
	cached, ok := c.cache[texts[0]]
	c.mu.Unlock()
	if ok {
		return [][]float32{cached}, nil
	}

	vecs, err := c.inner.GetEmbeddings(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) == 1 {
		c.mu.Lock()
		c.cache[texts[0]] = vecs[0]
		c.mu.Unlock()
	}
	return vecs, nil
}

// Len reports how many texts are cached.
func (c *CachingClient) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
