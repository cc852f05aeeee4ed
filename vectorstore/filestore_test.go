package vectorstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"curator/repository"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vectors.json")
}

func record(id string, vec []float32, content string) repository.VectorRecord {
	return repository.VectorRecord{
		ID:      id,
		Vector:  vec,
		Content: content,
		Metadata: repository.ChunkMetadata{
			Title: "T-" + id,
			URL:   "https://example.com/" + id,
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := tempStorePath(t)
	ctx := context.Background()

	store := NewFileStore(path)
	if err := store.Init(ctx, 0); err != nil {
		t.Fatalf("init: %v", err)
	}
	err := store.Upsert(ctx, []repository.VectorRecord{
		record("a", []float32{1, 0}, "ML basics"),
		record("b", []float32{0, 1}, "unrelated"),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	reloaded := NewFileStore(path)
	if err := reloaded.Init(ctx, 0); err != nil {
		t.Fatalf("reload init: %v", err)
	}
	n, _ := reloaded.Count(ctx)
	if n != 2 {
		t.Fatalf("expected 2 records after reload, got %d", n)
	}
	if reloaded.Dimension() != 2 {
		t.Errorf("expected dimension 2, got %d", reloaded.Dimension())
	}
}

func TestFileStoreDropsMalformedRecords(t *testing.T) {
	path := tempStorePath(t)
	content := `[
		{"id":"good","vector":[1,0,0],"content":"first valid","metadata":{}},
		{"id":"short","vector":[1,0],"content":"wrong length","metadata":{}},
		{"id":"","vector":[0,1,0],"content":"missing id","metadata":{}},
		{"id":"also-good","vector":[0,1,0],"content":"second valid","metadata":{}}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	if err := store.Init(context.Background(), 0); err != nil {
		t.Fatalf("init: %v", err)
	}

	n, _ := store.Count(context.Background())
	if n != 2 {
		t.Fatalf("expected 2 valid records, got %d", n)
	}
	if store.Dimension() != 3 {
		t.Errorf("declared dimension should come from first valid record, got %d", store.Dimension())
	}
}

func TestFileStoreSearchRanking(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(tempStorePath(t))
	if err := store.Init(ctx, 0); err != nil {
		t.Fatal(err)
	}
	err := store.Upsert(ctx, []repository.VectorRecord{
		record("a", []float32{1, 0}, "ML basics"),
		record("b", []float32{0, 1}, "unrelated"),
	})
	if err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "a" {
		t.Errorf("expected id a on top, got %s", results[0].ID)
	}
	if results[0].Score < 0.999999 {
		t.Errorf("expected similarity 1.0, got %f", results[0].Score)
	}
}

func TestFileStoreSearchStableTiesAndTruncation(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(tempStorePath(t))
	if err := store.Init(ctx, 0); err != nil {
		t.Fatal(err)
	}
	// Three identical vectors: scores tie, input order must hold.
	err := store.Upsert(ctx, []repository.VectorRecord{
		record("first", []float32{1, 1}, "one"),
		record("second", []float32{1, 1}, "two"),
		record("third", []float32{1, 1}, "three"),
	})
	if err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(ctx, []float32{1, 1}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("k beyond store size must return store size, got %d", len(results))
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, results[i].ID)
		}
	}
}

func TestFileStoreUpsertDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(tempStorePath(t))
	if err := store.Init(ctx, 0); err != nil {
		t.Fatal(err)
	}

	if err := store.Upsert(ctx, []repository.VectorRecord{record("a", []float32{1, 0}, "v1")}); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, []repository.VectorRecord{record("a", []float32{0, 1}, "v2")}); err != nil {
		t.Fatal(err)
	}

	n, _ := store.Count(ctx)
	if n != 1 {
		t.Fatalf("expected 1 record after re-upsert, got %d", n)
	}
	all, _ := store.All(ctx)
	if all[0].Content != "v2" {
		t.Errorf("expected newest content to win, got %s", all[0].Content)
	}
}

func TestFileStoreUpsertSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(tempStorePath(t))
	if err := store.Init(ctx, 0); err != nil {
		t.Fatal(err)
	}

	err := store.Upsert(ctx, []repository.VectorRecord{
		record("good", []float32{1, 0}, "valid"),
		record("bad-dim", []float32{1, 0, 0}, "wrong length"),
		{ID: "no-content", Vector: []float32{0, 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Count reflects what actually landed, not the attempted batch size.
	n, _ := store.Count(ctx)
	if n != 1 {
		t.Fatalf("expected only the valid record stored, got %d", n)
	}
}

func TestReadinessRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ready.json")

	if r := ReadReadiness(path); r.Ready {
		t.Error("missing marker should not be ready")
	}

	err := WriteReadiness(path, Readiness{Ready: true, Backend: "file", Records: 7, Dimension: 1536})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	r := ReadReadiness(path)
	if !r.Ready || r.Records != 7 || r.Dimension != 1536 {
		t.Errorf("unexpected marker: %+v", r)
	}
}
