package model

import (
	"encoding/json"
	"fmt"
)

// Severity represents the risk level of a privacy signal.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. Values ascend with risk so that
// ordinary comparison operators express "more severe than". The String()
// method and JSON marshaling provide the wire representation.
type Severity int

const (
	// SeverityLow indicates a minor privacy exposure.
	// Examples: a moderately distinctive program mix, light counterparty reuse.
	// These become meaningful mostly in combination with other signals.
	SeverityLow Severity = iota

	// SeverityMedium indicates a moderate exposure that warrants attention.
	// Examples: a recurring instruction sequence, an external fee payer,
	// interaction with a labeled protocol.
	SeverityMedium

	// SeverityHigh indicates a serious exposure that links activity to an
	// identity or operator. Examples: a wallet that never pays its own fees,
	// transfers to a known exchange deposit address.
	SeverityHigh
)

// String returns the human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Rank returns the sort rank of the severity: HIGH=0, MEDIUM=1, LOW=2.
// Signal lists are ordered by ascending rank, so high-severity signals
// always come first.
func (s Severity) Rank() int {
	return int(SeverityHigh - s)
}

// MarshalJSON encodes the severity as its string form ("LOW", "MEDIUM",
// "HIGH"). The report contract is string-valued, not numeric.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	switch text {
	case "LOW":
		*s = SeverityLow
	case "MEDIUM":
		*s = SeverityMedium
	case "HIGH":
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}
