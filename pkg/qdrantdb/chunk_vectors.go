package qdrantdb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"curator/repository"
)

// EnsureChunkCollection creates the chunk collection with cosine distance
// when it does not exist yet.
func (c *Client) EnsureChunkCollection(ctx context.Context, dimension int) error {
	exists, err := c.qdrant.CollectionExists(ctx, ChunkCollectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = c.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: ChunkCollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("err create chunk collection: %w", err)
	}
	return nil
}

// UpsertChunks writes vector records as points. Record ids are content
// derived, so re-running a build overwrites rather than duplicates.
func (c *Client) UpsertChunks(ctx context.Context, records []repository.VectorRecord) error {
	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, rec := range records {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(rec.ID),
			Vectors: qdrant.NewVectorsDense(rec.Vector),
			Payload: qdrant.NewValueMap(payloadFromRecord(rec)),
		})
	}

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ChunkCollectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	return err
}

// QueryChunks returns the k nearest stored chunks to the given vector.
func (c *Client) QueryChunks(ctx context.Context, vector []float32, k int) ([]repository.ScoredRecord, error) {
	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: ChunkCollectionName,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	results := make([]repository.ScoredRecord, 0, len(points))
	for _, p := range points {
		rec := recordFromPayload(p.Payload)
		rec.ID = p.Id.GetUuid()
		results = append(results, repository.ScoredRecord{
			VectorRecord: rec,
			Score:        float64(p.Score),
		})
	}
	return results, nil
}

// ScrollChunks reads up to limit stored records with vectors and payloads.
func (c *Client) ScrollChunks(ctx context.Context, limit int) ([]repository.VectorRecord, error) {
	points, err := c.qdrant.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: ChunkCollectionName,
		Limit:          qdrant.PtrOf(uint32(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, err
	}

	records := make([]repository.VectorRecord, 0, len(points))
	for _, p := range points {
		rec := recordFromPayload(p.Payload)
		rec.ID = p.Id.GetUuid()
		if v := p.Vectors.GetVector(); v != nil {
			rec.Vector = v.GetData()
		}
		records = append(records, rec)
	}
	return records, nil
}

// CountChunks returns the exact number of stored points.
func (c *Client) CountChunks(ctx context.Context) (int, error) {
	n, err := c.qdrant.Count(ctx, &qdrant.CountPoints{
		CollectionName: ChunkCollectionName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (c *Client) Close() error {
	return c.qdrant.Close()
}

func payloadFromRecord(rec repository.VectorRecord) map[string]any {
	keywords := make([]any, 0, len(rec.Metadata.Keywords))
	for _, kw := range rec.Metadata.Keywords {
		keywords = append(keywords, kw)
	}
	return map[string]any{
		"content":      rec.Content,
		"title":        rec.Metadata.Title,
		"url":          rec.Metadata.URL,
		"chunkIndex":   rec.Metadata.ChunkIndex,
		"totalChunks":  rec.Metadata.TotalChunks,
		"keywords":     keywords,
		"qualityScore": rec.Metadata.QualityScore,
	}
}

func recordFromPayload(payload map[string]*qdrant.Value) repository.VectorRecord {
	var rec repository.VectorRecord
	rec.Content = payload["content"].GetStringValue()
	rec.Metadata.Title = payload["title"].GetStringValue()
	rec.Metadata.URL = payload["url"].GetStringValue()
	rec.Metadata.ChunkIndex = int(payload["chunkIndex"].GetIntegerValue())
	rec.Metadata.TotalChunks = int(payload["totalChunks"].GetIntegerValue())
	rec.Metadata.QualityScore = payload["qualityScore"].GetDoubleValue()
	if list := payload["keywords"].GetListValue(); list != nil {
		for _, v := range list.Values {
			rec.Metadata.Keywords = append(rec.Metadata.Keywords, v.GetStringValue())
		}
	}
	return rec
}
