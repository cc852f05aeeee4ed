package qdrantdb

import (
	"github.com/qdrant/go-client/qdrant"
)

const ChunkCollectionName = "curator_chunks"

type Client struct {
	qdrant *qdrant.Client
}

func NewClient(host string, port int) (*Client, error) {
	c, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port, // gRPC port
	})
	if err != nil {
		return nil, err
	}
	return &Client{qdrant: c}, nil
}
