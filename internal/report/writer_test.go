package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/solscan/internal/model"
)

func sampleReport() *model.PrivacyReport {
	scanCtx := emptyContext("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
	scanCtx.TransactionCount = 5
	scanCtx.Labels["exchange-addr"] = model.Label{
		Address: "exchange-addr", Name: "Binance", Type: "exchange",
	}

	signals := []model.Signal{
		{
			ID:       model.SignalKnownEntity,
			Name:     "Known Entity Interaction",
			Severity: model.SeverityHigh,
			Category: model.CategoryIdentity,
			Reason:   "Transfers involve 1 publicly labeled entities, including at least one exchange.",
			Impact:   "Exchange deposits tie activity to KYC records.",
			Evidence: []model.Evidence{{
				Description: "4 transfer(s) with Binance (exchange)",
				Reference:   "exchange-addr",
				Type:        model.EvidenceEntity,
				Data: model.EntityEvidence{
					Address: "exchange-addr", Name: "Binance", Category: "exchange", Interactions: 4,
				},
			}},
			Mitigation: "Use intermediate wallets.",
		},
		{
			ID:         model.SignalTimingBurst,
			Name:       "Transaction Timing Bursts",
			Severity:   model.SeverityLow,
			Category:   model.CategoryBehavioral,
			Reason:     "Transactions cluster into bursts.",
			Impact:     "Burst timing aids correlation.",
			Evidence:   []model.Evidence{},
			Mitigation: "Introduce randomized delays.",
			Confidence: model.Confidence(0.4),
		},
	}
	return BuildAt(scanCtx, signals, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

// TestJSONWriterContract tests the stable JSON field names.
func TestJSONWriterContract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewJSONWriter(&buf).Write(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{
		"version", "timestamp", "targetType", "target", "overallRisk",
		"signals", "summary", "mitigations", "knownEntities",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	summary, ok := decoded["summary"].(map[string]any)
	if !ok {
		t.Fatalf("summary has unexpected shape: %T", decoded["summary"])
	}
	for _, key := range []string{
		"totalSignals", "highRiskSignals", "mediumRiskSignals",
		"lowRiskSignals", "transactionsAnalyzed",
	} {
		if _, ok := summary[key]; !ok {
			t.Errorf("missing summary key %q", key)
		}
	}

	if decoded["overallRisk"] != "MEDIUM" {
		t.Errorf("expected overallRisk MEDIUM, got %v", decoded["overallRisk"])
	}

	signals, ok := decoded["signals"].([]any)
	if !ok || len(signals) != 2 {
		t.Fatalf("unexpected signals shape: %v", decoded["signals"])
	}
	first, ok := signals[0].(map[string]any)
	if !ok {
		t.Fatalf("signal has unexpected shape: %T", signals[0])
	}
	for _, key := range []string{"id", "name", "severity", "reason", "impact", "evidence", "mitigation"} {
		if _, ok := first[key]; !ok {
			t.Errorf("missing signal key %q", key)
		}
	}
}

// TestJSONWriterIndent tests pretty-printed output.
func TestJSONWriterIndent(t *testing.T) {
	t.Parallel()

	var compact, pretty bytes.Buffer
	if _, err := NewJSONWriter(&compact).Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewJSONWriter(&pretty, WithPrettyPrint()).Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pretty.Len() <= compact.Len() {
		t.Error("pretty output should be larger than compact output")
	}
	if !strings.Contains(pretty.String(), "\n  ") {
		t.Error("pretty output should be indented")
	}
}

// TestSimpleWriter tests the human-readable format.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"PRIVACY SCAN REPORT",
		"Overall Risk: MEDIUM",
		"[HIGH] Known Entity Interaction",
		"Binance",
		"MITIGATIONS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestMarkdownWriter tests the markdown format end to end.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Privacy Scan Report",
		"## Severity Summary",
		"mermaid",
		"Known Entity Interaction",
		"## Mitigations",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&a), NewSimpleWriter(&b))

	n, err := mw.Write(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != a.Len()+b.Len() {
		t.Errorf("expected total %d, got %d", a.Len()+b.Len(), n)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("both writers should receive output")
	}
}
