package analyzer

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Understanding Vector Search</title><style>body{color:red}</style></head>
<body>
<script>console.log("noise")</script>
<article>
<h1>Understanding Vector Search</h1>
<p>Vector search ranks documents by embedding similarity rather than keyword overlap.</p>
<p>This page explains how cosine similarity compares query and document vectors.</p>
</article>
</body>
</html>`

func TestGoqueryExtractorStripsNoise(t *testing.T) {
	title, text, err := GoqueryExtractor{}.Extract([]byte(samplePage), "https://example.com/vs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if title != "Understanding Vector Search" {
		t.Errorf("unexpected title: %q", title)
	}
	if strings.Contains(text, "console.log") || strings.Contains(text, "color:red") {
		t.Error("script/style content leaked into extracted text")
	}
	if !strings.Contains(text, "cosine similarity") {
		t.Errorf("body text missing: %q", text)
	}
}

func TestExtractorChainFallsThrough(t *testing.T) {
	chain := NewExtractorChain()

	// Whichever extractor wins, the paragraph text must come through.
	_, text, err := chain.Extract([]byte(samplePage), "https://example.com/vs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "embedding similarity") {
		t.Errorf("expected extracted body text, got %q", text)
	}
}

func TestExtractorChainEmptyDocument(t *testing.T) {
	chain := NewExtractorChain()
	if _, _, err := chain.Extract([]byte("<html><body></body></html>"), "https://example.com/empty"); err == nil {
		t.Error("expected an error for a page with no text")
	}
}
