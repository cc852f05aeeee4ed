package retrieval

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"curator/pkg/embedding"
	"curator/pkg/textutil"
	"curator/repository"
	"curator/vectorstore"
)

// Result carries ranked records plus whether a fallback served the query.
type Result struct {
	Records  []repository.ScoredRecord
	Degraded bool
}

// Ranker scores stored chunks against a free-text query. Embedding is the
// primary strategy; lexical token overlap takes over when the embedding call
// fails or its dimension disagrees with the store.
type Ranker struct {
	store     vectorstore.Store
	embedder  embedding.Client
	dimension int
	logger    *zap.Logger
}

func NewRanker(store vectorstore.Store, embedder embedding.Client, dimension int, logger *zap.Logger) *Ranker {
	return &Ranker{
		store:     store,
		embedder:  embedder,
		dimension: dimension,
		logger:    logger,
	}
}

// Search returns the top k records for the query. The query is expected to
// be normalized already.
func (r *Ranker) Search(ctx context.Context, query string, k int) (Result, error) {
	if k <= 0 {
		return Result{}, nil
	}

	vecs, err := r.embedder.GetEmbeddings(ctx, []string{query})
	if err == nil && len(vecs) == 1 && r.dimensionMatches(vecs[0]) {
		records, searchErr := r.store.Search(ctx, vecs[0], k)
		if searchErr == nil {
			return Result{Records: records}, nil
		}
		err = searchErr
	}

	r.logger.Warn("falling back to lexical scoring",
		zap.String("query", query),
		zap.Error(err))

	records, lexErr := r.lexicalSearch(ctx, query, k)
	if lexErr != nil {
		return Result{}, lexErr
	}
	return Result{Records: records, Degraded: true}, nil
}

func (r *Ranker) dimensionMatches(vec []float32) bool {
	if r.dimension <= 0 {
		return len(vec) > 0
	}
	return len(vec) == r.dimension
}

// lexicalSearch scores each record by the fraction of the query's distinct
// stemmed tokens found as substrings of the record content. An empty query
// scores every candidate 0.
func (r *Ranker) lexicalSearch(ctx context.Context, query string, k int) ([]repository.ScoredRecord, error) {
	records, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	terms := distinctStems(query)

	scored := make([]repository.ScoredRecord, 0, len(records))
	for _, rec := range records {
		scored = append(scored, repository.ScoredRecord{
			VectorRecord: rec,
			Score:        LexicalScore(terms, rec.Content),
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

// LexicalScore is the fraction of terms appearing as substrings of text.
func LexicalScore(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(text)

	found := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}

func distinctStems(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, tok := range textutil.Tokenize(query) {
		stem := textutil.Stem(tok)
		if stem == "" || seen[stem] {
			continue
		}
		seen[stem] = true
		terms = append(terms, stem)
	}
	return terms
}
