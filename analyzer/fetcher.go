package analyzer

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"curator/config"
	"curator/repository"
)

// Fetcher downloads seed pages one at a time, extracts the article text and
// keeps those that clear the quality bar.
type Fetcher struct {
	collector *colly.Collector
	extractor *ExtractorChain
	minScore  float64
	logger    *zap.Logger

	records []repository.ContentRecord
	errs    []error
}

func NewFetcher(delay time.Duration, minScore float64, store *VisitedStorage, logger *zap.Logger) (*Fetcher, error) {
	c := colly.NewCollector(
		colly.UserAgent("curator/1.0"),
		colly.MaxDepth(1),
	)
	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       delay,
	}); err != nil {
		return nil, fmt.Errorf("failed to configure rate limit: %w", err)
	}
	if store != nil {
		if err := c.SetStorage(store); err != nil {
			return nil, fmt.Errorf("failed to attach visited storage: %w", err)
		}
	}

	f := &Fetcher{
		collector: c,
		extractor: NewExtractorChain(),
		minScore:  minScore,
		logger:    logger,
	}

	c.OnResponse(f.onResponse)
	c.OnError(func(r *colly.Response, err error) {
		url := "unknown"
		if r != nil && r.Request != nil {
			url = r.Request.URL.String()
		}
		f.errs = append(f.errs, fmt.Errorf("fetch %s: %w", url, err))
		f.logger.Warn("fetch failed", zap.String("url", url), zap.Error(err))
	})

	return f, nil
}

// Run visits every seed sequentially and returns the accepted records plus
// per-seed errors. A failed seed is skipped, never fatal.
func (f *Fetcher) Run(seeds []config.Seed) ([]repository.ContentRecord, []error) {
	f.records = nil
	f.errs = nil

	for _, seed := range seeds {
		if err := f.collector.Visit(seed.URL); err != nil {
			f.errs = append(f.errs, fmt.Errorf("visit %s: %w", seed.URL, err))
			f.logger.Warn("skipping seed", zap.String("url", seed.URL), zap.Error(err))
		}
	}

	return f.records, f.errs
}

func (f *Fetcher) onResponse(r *colly.Response) {
	pageURL := r.Request.URL.String()

	title, text, err := f.extractor.Extract(r.Body, pageURL)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("extract %s: %w", pageURL, err))
		f.logger.Warn("extraction failed", zap.String("url", pageURL), zap.Error(err))
		return
	}

	report := ScoreContent(text)
	f.logger.Info("article analyzed",
		zap.String("url", pageURL),
		zap.String("title", title),
		zap.Int("word_count", report.WordCount),
		zap.Float64("vocab_richness", report.VocabRichness),
		zap.Int("sentence_count", report.SentenceCount),
		zap.Float64("score", report.Score))

	if report.Score < f.minScore {
		f.logger.Info("article below quality bar",
			zap.String("url", pageURL),
			zap.Float64("score", report.Score),
			zap.Float64("min", f.minScore))
		return
	}

	f.records = append(f.records, repository.ContentRecord{
		URL:          pageURL,
		Title:        title,
		Content:      text,
		WordCount:    report.WordCount,
		QualityScore: report.Score,
	})
}
