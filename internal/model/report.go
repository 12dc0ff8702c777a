package model

import (
	"sort"
	"time"
)

// SchemaVersion is the privacy report schema version embedded in every
// report. Bump on breaking changes to the JSON contract.
const SchemaVersion = "1.0.0"

// Summary holds the per-severity signal counts for a report.
// The three severity counts always sum to TotalSignals.
type Summary struct {
	// TotalSignals is the number of signals in the report.
	TotalSignals int `json:"totalSignals"`

	// HighRiskSignals is the number of HIGH severity signals.
	HighRiskSignals int `json:"highRiskSignals"`

	// MediumRiskSignals is the number of MEDIUM severity signals.
	MediumRiskSignals int `json:"mediumRiskSignals"`

	// LowRiskSignals is the number of LOW severity signals.
	LowRiskSignals int `json:"lowRiskSignals"`

	// TransactionsAnalyzed is the number of transactions that survived
	// normalization.
	TransactionsAnalyzed int `json:"transactionsAnalyzed"`
}

// PrivacyReport is the final scan result: the stable JSON-shaped contract
// consumed by the CLI and any downstream tooling. Derived once per scan and
// immutable afterwards.
type PrivacyReport struct {
	// Version is the report schema version.
	Version string `json:"version"`

	// Timestamp is when the report was generated.
	Timestamp time.Time `json:"timestamp"`

	// TargetType is the scanned target kind.
	TargetType TargetKind `json:"targetType"`

	// Target is the scanned address or signature.
	Target string `json:"target"`

	// OverallRisk is the aggregated risk level. It is a pure function of
	// the signal severity multiset.
	OverallRisk Severity `json:"overallRisk"`

	// Signals is the full signal list, sorted by descending severity with
	// detector registration order preserved among equal severities.
	Signals []Signal `json:"signals"`

	// Summary holds per-severity counts.
	Summary Summary `json:"summary"`

	// Mitigations is the deduplicated mitigation advice list, in
	// first-trigger insertion order.
	Mitigations []string `json:"mitigations"`

	// KnownEntities lists the labeled entities observed during the scan.
	KnownEntities []Label `json:"knownEntities"`

	// Warnings records non-fatal collection and normalization issues.
	// An empty signal list with warnings present may mean data collection
	// failed rather than that the target is clean.
	Warnings []string `json:"warnings,omitempty"`
}

// NewSummary computes the per-severity counts for a signal list.
func NewSummary(signals []Signal, transactionsAnalyzed int) Summary {
	s := Summary{
		TotalSignals:         len(signals),
		TransactionsAnalyzed: transactionsAnalyzed,
	}
	for _, sig := range signals {
		switch sig.Severity {
		case SeverityHigh:
			s.HighRiskSignals++
		case SeverityMedium:
			s.MediumRiskSignals++
		case SeverityLow:
			s.LowRiskSignals++
		}
	}
	return s
}

// SortSignals stable-sorts a signal list by severity rank (HIGH first),
// preserving the existing order among equal severities. It sorts in place
// and returns the same slice for convenience.
func SortSignals(signals []Signal) []Signal {
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Severity.Rank() < signals[j].Severity.Rank()
	})
	return signals
}
