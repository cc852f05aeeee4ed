package embedding

import (
	"context"

	"go.uber.org/zap"
)

// FallbackClient tries each client in order and returns the first success.
// With a MockClient last the chain never fails, so an embedding outage
// degrades batch output quality instead of halting a pipeline run. Holds no
// per-call state, so it is safe for concurrent use.
type FallbackClient struct {
	chain  []Client
	logger *zap.Logger
}

func NewFallbackClient(logger *zap.Logger, chain ...Client) *FallbackClient {
	return &FallbackClient{chain: chain, logger: logger}
}

func (c *FallbackClient) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for i, client := range c.chain {
		vecs, err := client.GetEmbeddings(ctx, texts)
		if err == nil {
			return vecs, nil
		}
		lastErr = err
		c.logger.Warn("embedding client failed, trying next",
			zap.Int("position", i),
			zap.Error(err))
	}
	return nil, lastErr
}
