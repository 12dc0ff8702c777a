package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nao1215/solscan/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingStep appends its name to a shared log when executed.
type recordingStep struct {
	name string
	log  *[]string
	err  error
}

func (s *recordingStep) Name() string { return s.name }
func (s *recordingStep) Do(_ context.Context, _ *Scan) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

// TestPipelineExecutesInOrder tests sequential step execution.
func TestPipelineExecutesInOrder(t *testing.T) {
	t.Parallel()

	var log []string
	p := New(WithLogger(testLogger()))
	p.AddSteps(
		&recordingStep{name: "first", log: &log},
		&recordingStep{name: "second", log: &log},
		&recordingStep{name: "third", log: &log},
	)

	scan := NewScan("target", model.TargetWallet)
	if err := p.Execute(context.Background(), scan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("expected %d executions, got %v", len(want), log)
	}
	for i, name := range want {
		if log[i] != name {
			t.Errorf("step %d: got %s, want %s", i, log[i], name)
		}
		if scan.PerformedSteps[i] != name {
			t.Errorf("performed step %d: got %s, want %s", i, scan.PerformedSteps[i], name)
		}
	}
}

// TestPipelineStopsOnError tests the default fail-fast behavior.
func TestPipelineStopsOnError(t *testing.T) {
	t.Parallel()

	var log []string
	p := New(WithLogger(testLogger()))
	p.AddSteps(
		&recordingStep{name: "first", log: &log},
		&recordingStep{name: "broken", log: &log, err: errors.New("boom")},
		&recordingStep{name: "never", log: &log},
	)

	scan := NewScan("target", model.TargetWallet)
	if err := p.Execute(context.Background(), scan); err == nil {
		t.Fatal("expected an error")
	}
	if len(log) != 2 {
		t.Errorf("expected execution to stop after the failing step, got %v", log)
	}
	if scan.ErrorMessage != "boom" {
		t.Errorf("expected recorded error message, got %q", scan.ErrorMessage)
	}
}

// TestPipelineContinueOnError tests the opt-in degraded mode.
func TestPipelineContinueOnError(t *testing.T) {
	t.Parallel()

	var log []string
	p := New(WithLogger(testLogger()), WithContinueOnError(true))
	p.AddSteps(
		&recordingStep{name: "broken", log: &log, err: errors.New("boom")},
		&recordingStep{name: "still-runs", log: &log},
	)

	scan := NewScan("target", model.TargetWallet)
	if err := p.Execute(context.Background(), scan); err != nil {
		t.Fatalf("continueOnError pipeline must not fail: %v", err)
	}
	if len(log) != 2 {
		t.Errorf("expected both steps to run, got %v", log)
	}
}

// TestPipelineCancellation tests that a cancelled context stops execution
// between steps.
func TestPipelineCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log []string
	p := New(WithLogger(testLogger()))
	p.AddStep(&recordingStep{name: "never", log: &log})

	err := p.Execute(ctx, NewScan("target", model.TargetWallet))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(log) != 0 {
		t.Errorf("no step should run after cancellation, got %v", log)
	}
}

// TestPipelineStepNames tests step introspection.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	var log []string
	p := New(WithLogger(testLogger()))
	p.AddSteps(
		&recordingStep{name: "a", log: &log},
		&recordingStep{name: "b", log: &log},
	)

	if p.StepCount() != 2 {
		t.Errorf("expected 2 steps, got %d", p.StepCount())
	}
	names := p.StepNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected step names: %v", names)
	}
}
