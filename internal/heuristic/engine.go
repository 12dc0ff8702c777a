package heuristic

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/solscan/internal/model"
)

// Engine runs a fixed, ordered list of detectors and combines their output
// deterministically.
type Engine struct {
	detectors []Detector
	logger    *slog.Logger
}

// NewEngine creates an engine with the default detector set.
// If logger is nil, slog.Default() is used.
//
// The registration order below is part of the output contract: signals of
// equal severity appear in this order.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger,
		detectors: []Detector{
			&feePayerDetector{},
			&knownEntityDetector{},
			&fingerprintDetector{},
			&timingDetector{},
			&traceabilityDetector{},
			&memoPIIDetector{},
			&addressReuseDetector{},
			&signerOverlapDetector{},
			&tokenLifecycleDetector{},
		},
	}
}

// Register appends a detector after the default set. Registered detectors
// run last and sort last among equal severities.
func (e *Engine) Register(d Detector) {
	e.detectors = append(e.detectors, d)
}

// Detectors returns the registered detectors, in evaluation order.
func (e *Engine) Detectors() []Detector {
	out := make([]Detector, len(e.detectors))
	copy(out, e.detectors)
	return out
}

// Evaluate runs every detector in registration order and returns the
// combined signal list, stable-sorted by descending severity.
//
// A failing or panicking detector is logged and skipped; Evaluate never
// fails and never lets a panic escape.
func (e *Engine) Evaluate(scanCtx *model.ScanContext) []model.Signal {
	signals := []model.Signal{}
	for _, d := range e.detectors {
		result, err := e.runDetector(d, scanCtx)
		if err != nil {
			e.logger.Warn("detector failed, continuing with remaining detectors",
				"detector", d.ID(),
				"error", err,
			)
			continue
		}
		signals = append(signals, result...)
	}
	model.SortSignals(signals)
	return signals
}

// runDetector invokes one detector and converts panics into errors so that
// no detector failure can cross the engine boundary.
func (e *Engine) runDetector(d Detector, scanCtx *model.ScanContext) (signals []model.Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			signals = nil
			err = fmt.Errorf("detector %s panicked: %v", d.ID(), r)
		}
	}()
	return d.Evaluate(scanCtx)
}
