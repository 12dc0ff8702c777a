package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/solscan/internal/model"
)

// BatchProcessor scans multiple targets concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-scan execution
// 2. It allows different batch strategies later
// 3. Each scan owns independent state, so no locking is needed beyond the
//    pre-allocated results slice
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each scan.
	// A factory ensures each scan gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each scan to create a fresh
// pipeline instance, so pipeline state never leaks between scans.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch scans multiple targets of the same kind concurrently.
// Results keep the input order. Scans that fail are returned with their
// ErrorMessage set; the error return only reports cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []string, kind model.TargetKind) ([]*Scan, error) {
	bp.logger.Info("starting batch scan",
		"targets", len(targets),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	results := make([]*Scan, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			scan := NewScan(target, kind)
			results[i] = scan

			if err := bp.pipelineFactory().Execute(ctx, scan); err != nil {
				bp.logger.Warn("scan failed",
					"target", target,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("batch scan finished",
		"targets", len(targets),
		"duration", time.Since(start),
	)
	return results, err
}
