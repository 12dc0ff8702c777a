package model

import "testing"

// TestNewSummary tests per-severity counting.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	t.Run("counts sum to total", func(t *testing.T) {
		t.Parallel()

		signals := []Signal{
			{ID: "a", Severity: SeverityHigh},
			{ID: "b", Severity: SeverityMedium},
			{ID: "c", Severity: SeverityMedium},
			{ID: "d", Severity: SeverityLow},
		}

		s := NewSummary(signals, 7)
		if s.TotalSignals != 4 {
			t.Errorf("expected 4 total signals, got %d", s.TotalSignals)
		}
		if s.HighRiskSignals != 1 || s.MediumRiskSignals != 2 || s.LowRiskSignals != 1 {
			t.Errorf("unexpected counts: %+v", s)
		}
		if sum := s.HighRiskSignals + s.MediumRiskSignals + s.LowRiskSignals; sum != s.TotalSignals {
			t.Errorf("severity counts sum to %d, expected %d", sum, s.TotalSignals)
		}
		if s.TransactionsAnalyzed != 7 {
			t.Errorf("expected 7 transactions analyzed, got %d", s.TransactionsAnalyzed)
		}
	})

	t.Run("empty signal list", func(t *testing.T) {
		t.Parallel()

		s := NewSummary(nil, 0)
		if s.TotalSignals != 0 || s.HighRiskSignals != 0 || s.MediumRiskSignals != 0 || s.LowRiskSignals != 0 {
			t.Errorf("expected zero counts, got %+v", s)
		}
	})
}

// TestSortSignals tests the severity sort invariant: HIGH before MEDIUM
// before LOW, with original order preserved among equal severities.
func TestSortSignals(t *testing.T) {
	t.Parallel()

	signals := []Signal{
		{ID: "low1", Severity: SeverityLow},
		{ID: "med1", Severity: SeverityMedium},
		{ID: "high1", Severity: SeverityHigh},
		{ID: "med2", Severity: SeverityMedium},
		{ID: "low2", Severity: SeverityLow},
		{ID: "high2", Severity: SeverityHigh},
	}

	sorted := SortSignals(signals)

	expected := []string{"high1", "high2", "med1", "med2", "low1", "low2"}
	for i, id := range expected {
		if sorted[i].ID != id {
			t.Errorf("position %d: got %q, expected %q", i, sorted[i].ID, id)
		}
	}

	// Severity rank must be non-decreasing.
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Severity.Rank() < sorted[i-1].Severity.Rank() {
			t.Errorf("sort invariant violated at position %d", i)
		}
	}
}
