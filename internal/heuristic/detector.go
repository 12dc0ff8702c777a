package heuristic

import "github.com/nao1215/solscan/internal/model"

// Detector is one privacy-risk check over a scan context.
//
// Implementations must be pure functions of the context: no side effects,
// deterministic output for identical input, and no mutation of the context.
// A detector must not assume protocol-specific fields are populated; when
// its inputs are absent it returns an empty list.
type Detector interface {
	// ID returns the stable detector identifier.
	ID() string

	// Name returns the human-readable detector name.
	Name() string

	// Evaluate inspects the context and returns zero or more signals.
	Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error)
}

// newSignal assembles a signal from the central signal catalog, so wording
// stays consistent across detectors.
func newSignal(id string, severity model.Severity, reason string, evidence []model.Evidence) model.Signal {
	info := model.GetSignalInfo(id)
	return model.Signal{
		ID:         id,
		Name:       info.Name,
		Severity:   severity,
		Category:   info.Category,
		Reason:     reason,
		Impact:     info.Impact,
		Evidence:   evidence,
		Mitigation: info.Mitigation,
	}
}

// countThreshold returns max(floor, fraction of total), rounded up.
func countThreshold(total int, fraction float64, floor int) int {
	scaled := int(fraction * float64(total))
	if fraction*float64(total) > float64(scaled) {
		scaled++
	}
	if scaled < floor {
		return floor
	}
	return scaled
}
