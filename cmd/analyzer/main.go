package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"curator/analyzer"
	"curator/config"
	"curator/pipeline"
	"curator/repository"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Visited storage
	// =========
	visited := &analyzer.VisitedStorage{Path: cfg.VisitedDBPath}
	if err := visited.Init(); err != nil {
		logger.Fatal("failed to open visited storage", zap.Error(err))
	}
	defer visited.Close()

	// =========
	// Fetcher
	// =========
	fetcher, err := analyzer.NewFetcher(cfg.FetchDelay, cfg.MinQualityScore, visited, logger)
	if err != nil {
		logger.Fatal("failed to create fetcher", zap.Error(err))
	}

	// =========
	// Pipeline
	// =========
	runner := pipeline.NewRunner(logger,
		pipeline.Stage{Name: "load_seeds", Run: func(_ context.Context, rc *pipeline.RunContext) error {
			seeds, err := config.LoadSeeds(cfg.SeedFilePath)
			if err != nil {
				return err
			}
			rc.Values["seeds"] = seeds
			rc.Stats["seeds"] = len(seeds)
			return nil
		}},
		pipeline.Stage{Name: "fetch_and_score", Run: func(_ context.Context, rc *pipeline.RunContext) error {
			seeds, _ := rc.Values["seeds"].([]config.Seed)
			records, errs := fetcher.Run(seeds)
			for _, e := range errs {
				rc.Fail("fetch_and_score", e)
			}
			rc.Values["records"] = records
			rc.Stats["accepted"] = len(records)
			return nil
		}},
		pipeline.Stage{Name: "write_records", Run: func(_ context.Context, rc *pipeline.RunContext) error {
			records, _ := rc.Values["records"].([]repository.ContentRecord)
			if err := analyzer.WriteContentRecords(cfg.ContentFilePath, records); err != nil {
				return fmt.Errorf("failed to write %s: %w", cfg.ContentFilePath, err)
			}
			rc.Stats["written"] = len(records)
			return nil
		}},
	)

	rc := runner.Run(context.Background())
	runner.Report(rc)
}
