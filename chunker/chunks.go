package chunker

import (
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"

	"curator/repository"
)

var chunkNamespace = uuid.MustParse("9f2c1b4e-8a3d-47f6-b1c9-5e7d0a2f6c81")

// Builder turns analyzed content records into chunk records ready for
// embedding.
type Builder struct {
	splitter Splitter
	rake     *RAKEExtractor
	keywords int
}

func NewBuilder(splitter Splitter, keywordsPerChunk int) *Builder {
	return &Builder{
		splitter: splitter,
		rake:     NewRAKEExtractor(),
		keywords: keywordsPerChunk,
	}
}

// Build splits one content record into chunk records. Chunk ids are
// derived from the chunk content, so rebuilding the same corpus yields the
// same ids and the vector store deduplicates on upsert.
func (b *Builder) Build(record repository.ContentRecord) ([]repository.ChunkRecord, error) {
	texts, err := b.splitter.Split(record.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk %s: %w", record.URL, err)
	}

	chunks := make([]repository.ChunkRecord, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, repository.ChunkRecord{
			ID:      ChunkID(text),
			Content: text,
			Metadata: repository.ChunkMetadata{
				Title:        record.Title,
				URL:          record.URL,
				ChunkIndex:   i,
				TotalChunks:  len(texts),
				Keywords:     b.rake.ExtractKeywords(text, b.keywords),
				QualityScore: record.QualityScore,
			},
		})
	}
	return chunks, nil
}

// ChunkID derives a stable UUID from the chunk content.
func ChunkID(content string) string {
	hash := sha256.Sum256([]byte(content))
	return uuid.NewSHA1(chunkNamespace, hash[:16]).String()
}
