package chunker

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// MarkdownChunker splits markdown-shaped sources along heading boundaries.
// Character budget rather than word budget; used when a seed source is known
// to carry markdown structure worth preserving.
type MarkdownChunker struct {
	splitter textsplitter.TextSplitter
}

func NewMarkdownChunker(chunkSize int) *MarkdownChunker {
	if chunkSize <= 0 {
		chunkSize = 2500
	}
	return &MarkdownChunker{
		splitter: textsplitter.NewMarkdownTextSplitter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithHeadingHierarchy(true),
		),
	}
}

func (c *MarkdownChunker) Split(text string) ([]string, error) {
	chunks, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split markdown: %w", err)
	}
	return chunks, nil
}
