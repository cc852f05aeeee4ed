// Package pipeline runs an ordered list of stages over a shared run context.
// Stages execute strictly in order; a failing stage is recorded and the run
// continues, so later stages see partial input and report zero work.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// StageError records which stage failed and why.
type StageError struct {
	Stage string
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Stats accumulates per-run counters keyed by name.
type Stats map[string]int

// RunContext is the mutable state folded through the stages.
type RunContext struct {
	Values map[string]any
	Stats  Stats
	Errors []StageError
}

func NewRunContext() *RunContext {
	return &RunContext{
		Values: make(map[string]any),
		Stats:  make(Stats),
	}
}

// Fail records a non-fatal stage error.
func (rc *RunContext) Fail(stage string, err error) {
	rc.Errors = append(rc.Errors, StageError{Stage: stage, Err: err})
}

// Stage is one step of a pipeline run.
type Stage struct {
	Name string
	Run  func(ctx context.Context, rc *RunContext) error
}

type Runner struct {
	stages []Stage
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger, stages ...Stage) *Runner {
	return &Runner{stages: stages, logger: logger}
}

// Run executes every stage in order and returns the final run context.
// Stage errors never halt the sequence.
func (r *Runner) Run(ctx context.Context) *RunContext {
	rc := NewRunContext()

	for _, stage := range r.stages {
		start := time.Now()
		err := stage.Run(ctx, rc)
		elapsed := time.Since(start)

		if err != nil {
			rc.Fail(stage.Name, err)
			r.logger.Warn("stage failed",
				zap.String("stage", stage.Name),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			continue
		}
		r.logger.Info("stage complete",
			zap.String("stage", stage.Name),
			zap.Duration("elapsed", elapsed))
	}

	return rc
}

// Report logs the final counters and accumulated errors.
func (r *Runner) Report(rc *RunContext) {
	fields := make([]zap.Field, 0, len(rc.Stats)+1)
	for k, v := range rc.Stats {
		fields = append(fields, zap.Int(k, v))
	}
	fields = append(fields, zap.Int("errors", len(rc.Errors)))
	r.logger.Info("pipeline report", fields...)

	for _, se := range rc.Errors {
		r.logger.Warn("recorded error",
			zap.String("stage", se.Stage),
			zap.Error(se.Err))
	}
}
