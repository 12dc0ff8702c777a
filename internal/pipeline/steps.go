package pipeline

import (
	"context"
	"fmt"

	"github.com/nao1215/solscan/internal/heuristic"
	"github.com/nao1215/solscan/internal/ledger"
	"github.com/nao1215/solscan/internal/normalize"
	"github.com/nao1215/solscan/internal/report"
)

// CollectStep fetches raw ledger records for the scan target.
type CollectStep struct {
	collector *ledger.Collector
	opts      ledger.CollectOptions
}

// NewCollectStep creates a collection step over the given collector.
func NewCollectStep(collector *ledger.Collector, opts ledger.CollectOptions) *CollectStep {
	return &CollectStep{collector: collector, opts: opts}
}

// Name returns the step name.
func (s *CollectStep) Name() string { return "collect" }

// Do fetches the raw batch. Collection degrades rather than fails, so the
// only error here is a missing collector.
func (s *CollectStep) Do(ctx context.Context, scan *Scan) error {
	if s.collector == nil {
		return fmt.Errorf("collect: no collector configured")
	}
	scan.Batch = s.collector.Collect(ctx, scan.Target, scan.Kind, s.opts)
	return nil
}

// NormalizeStep converts the raw batch into a scan context.
type NormalizeStep struct {
	normalizer *normalize.Normalizer
}

// NewNormalizeStep creates a normalization step.
func NewNormalizeStep(normalizer *normalize.Normalizer) *NormalizeStep {
	return &NormalizeStep{normalizer: normalizer}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string { return "normalize" }

// Do builds the scan context from the collected batch.
func (s *NormalizeStep) Do(_ context.Context, scan *Scan) error {
	if s.normalizer == nil {
		return fmt.Errorf("normalize: no normalizer configured")
	}
	scan.Context = s.normalizer.Normalize(scan.Target, scan.Kind, scan.Batch)
	return nil
}

// EvaluateStep runs the detector engine over the scan context.
type EvaluateStep struct {
	engine *heuristic.Engine
}

// NewEvaluateStep creates an evaluation step.
func NewEvaluateStep(engine *heuristic.Engine) *EvaluateStep {
	return &EvaluateStep{engine: engine}
}

// Name returns the step name.
func (s *EvaluateStep) Name() string { return "evaluate" }

// Do evaluates the detectors. The engine isolates detector failures, so
// this step only fails when normalization never ran.
func (s *EvaluateStep) Do(_ context.Context, scan *Scan) error {
	if s.engine == nil {
		return fmt.Errorf("evaluate: no engine configured")
	}
	if scan.Context == nil {
		return fmt.Errorf("evaluate: scan context not built")
	}
	scan.Signals = s.engine.Evaluate(scan.Context)
	return nil
}

// ReportStep assembles the final privacy report.
type ReportStep struct{}

// NewReportStep creates a report assembly step.
func NewReportStep() *ReportStep {
	return &ReportStep{}
}

// Name returns the step name.
func (s *ReportStep) Name() string { return "report" }

// Do builds the report from the evaluated scan.
func (s *ReportStep) Do(_ context.Context, scan *Scan) error {
	if scan.Context == nil {
		return fmt.Errorf("report: scan context not built")
	}
	scan.Report = report.Build(scan.Context, scan.Signals)
	return nil
}

// DefaultSteps returns the standard scan step sequence.
func DefaultSteps(collector *ledger.Collector, normalizer *normalize.Normalizer, engine *heuristic.Engine, opts ledger.CollectOptions) []Step {
	return []Step{
		NewCollectStep(collector, opts),
		NewNormalizeStep(normalizer),
		NewEvaluateStep(engine),
		NewReportStep(),
	}
}
