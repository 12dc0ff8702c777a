package pipeline

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/nao1215/solscan/internal/heuristic"
	"github.com/nao1215/solscan/internal/labels"
	"github.com/nao1215/solscan/internal/ledger"
	"github.com/nao1215/solscan/internal/model"
	"github.com/nao1215/solscan/internal/normalize"
)

// stubCollectStep injects a pre-built batch instead of fetching one.
type stubCollectStep struct {
	batch *ledger.Batch
}

func (s *stubCollectStep) Name() string { return "collect" }
func (s *stubCollectStep) Do(_ context.Context, scan *Scan) error {
	scan.Batch = s.batch
	return nil
}

// TestScanEndToEnd runs normalize, evaluate, and report over a batch with
// an exchange counterparty and checks the assembled report.
func TestScanEndToEnd(t *testing.T) {
	t.Parallel()

	const exchange = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	target := solana.NewWallet().PublicKey().String()

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  []string{target, exchange},
				NumSigners:   1,
				PreBalances:  []uint64{100, 0},
				PostBalances: []uint64{50, 50},
			},
		},
	}

	p := New(WithLogger(testLogger()))
	p.AddSteps(
		&stubCollectStep{batch: batch},
		NewNormalizeStep(normalize.New(labels.NewStaticResolver(nil), testLogger())),
		NewEvaluateStep(heuristic.NewEngine(testLogger())),
		NewReportStep(),
	)

	scan := NewScan(target, model.TargetWallet)
	if err := p.Execute(context.Background(), scan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scan.Report == nil {
		t.Fatal("expected a report")
	}
	if scan.Report.Target != target || scan.Report.TargetType != model.TargetWallet {
		t.Errorf("unexpected report identity: %s (%s)", scan.Report.Target, scan.Report.TargetType)
	}

	var entitySignal *model.Signal
	for i := range scan.Report.Signals {
		if scan.Report.Signals[i].ID == model.SignalKnownEntity {
			entitySignal = &scan.Report.Signals[i]
		}
	}
	if entitySignal == nil || entitySignal.Severity != model.SeverityHigh {
		t.Fatalf("expected HIGH known-entity signal, got %+v", scan.Report.Signals)
	}

	foundEntity := false
	for _, entity := range scan.Report.KnownEntities {
		if entity.Address == exchange && entity.Name == "Binance" {
			foundEntity = true
		}
	}
	if !foundEntity {
		t.Errorf("expected the exchange label in knownEntities, got %+v", scan.Report.KnownEntities)
	}

	if scan.Report.Summary.TransactionsAnalyzed != 1 {
		t.Errorf("expected 1 transaction analyzed, got %d", scan.Report.Summary.TransactionsAnalyzed)
	}
}

// TestEvaluateStepRequiresContext tests the ordering precondition.
func TestEvaluateStepRequiresContext(t *testing.T) {
	t.Parallel()

	step := NewEvaluateStep(heuristic.NewEngine(testLogger()))
	if err := step.Do(context.Background(), NewScan("target", model.TargetWallet)); err == nil {
		t.Error("expected an error when the scan context is missing")
	}
}

// TestReportStepRequiresContext tests the ordering precondition.
func TestReportStepRequiresContext(t *testing.T) {
	t.Parallel()

	if err := NewReportStep().Do(context.Background(), NewScan("target", model.TargetWallet)); err == nil {
		t.Error("expected an error when the scan context is missing")
	}
}
