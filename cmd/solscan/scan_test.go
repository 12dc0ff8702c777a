package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/solscan/internal/config"
)

// TestBuildConfigDefaults tests that buildConfig applies defaults when no
// flags are given.
func TestBuildConfigDefaults(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	targets := []string{"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"}

	cfg, err := buildConfig(cmd, targets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RPCEndpoint != config.DefaultRPCEndpoint {
		t.Errorf("expected default endpoint, got %q", cfg.RPCEndpoint)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxHistory != config.DefaultMaxHistory {
		t.Errorf("expected default history limit, got %d", cfg.MaxHistory)
	}
	if cfg.TargetType != "wallet" {
		t.Errorf("expected default target type 'wallet', got %q", cfg.TargetType)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != targets[0] {
		t.Errorf("expected targets %v, got %v", targets, cfg.Targets)
	}
	if cfg.Labels == nil {
		t.Error("expected an initialized label config")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

// TestBuildConfigFlags tests flag parsing into the config.
func TestBuildConfigFlags(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if err := cmd.ParseFlags([]string{
		"--rpc", "https://example.com/rpc",
		"--timeout", "10s",
		"--limit", "25",
		"--type", "program",
		"--batch", "2",
		"--json",
		"--output", "report.json",
		"--no-history",
	}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd, []string{"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RPCEndpoint != "https://example.com/rpc" {
		t.Errorf("unexpected endpoint: %q", cfg.RPCEndpoint)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.MaxHistory != 25 {
		t.Errorf("unexpected history limit: %d", cfg.MaxHistory)
	}
	if cfg.TargetType != "program" {
		t.Errorf("unexpected target type: %q", cfg.TargetType)
	}
	if cfg.BatchSize != 2 {
		t.Errorf("unexpected batch size: %d", cfg.BatchSize)
	}
	if !cfg.JSONReport || cfg.MarkdownReport {
		t.Errorf("unexpected report flags: json=%v markdown=%v", cfg.JSONReport, cfg.MarkdownReport)
	}
	if cfg.ReportFile != "report.json" {
		t.Errorf("unexpected report file: %q", cfg.ReportFile)
	}
	if !cfg.NoHistory {
		t.Error("expected history to be disabled")
	}
}

// TestBuildConfigLoadsLabels tests the explicit config file path branch.
func TestBuildConfigLoadsLabels(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".solscan")
	content := `labels:
  9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM:
    name: Deposit
    type: exchange
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := NewScanCmd()
	if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd, []string{"target"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Labels.Labels) != 1 {
		t.Errorf("expected 1 custom label, got %d", len(cfg.Labels.Labels))
	}
}

// TestBuildConfigMissingExplicitConfig tests that a missing explicit config
// file is an error, while a missing implicit one is not.
func TestBuildConfigMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if err := cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing")}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if _, err := buildConfig(cmd, []string{"target"}); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

// TestScanCmdRejectsConflictingFormats tests validation through the command.
func TestScanCmdRejectsConflictingFormats(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd, []string{"target"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected a validation error for conflicting formats")
	}
}
