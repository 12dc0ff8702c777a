package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// This test ensures that defaults are documented through tests and that changes
// to defaults are intentional (tests will fail if defaults change unexpectedly).
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default RPCEndpoint is the public mainnet endpoint", func(t *testing.T) {
		t.Parallel()
		if cfg.RPCEndpoint != "https://api.mainnet-beta.solana.com" {
			t.Errorf("expected the public mainnet endpoint, got '%s'", cfg.RPCEndpoint)
		}
	})

	t.Run("default Timeout is 60 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 60*time.Second {
			t.Errorf("expected Timeout to be 60s, got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxHistory is 100", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxHistory != 100 {
			t.Errorf("expected MaxHistory to be 100, got %d", cfg.MaxHistory)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default TargetType is wallet", func(t *testing.T) {
		t.Parallel()
		if cfg.TargetType != "wallet" {
			t.Errorf("expected TargetType to be 'wallet', got '%s'", cfg.TargetType)
		}
	})

	t.Run("default DBDir is under the XDG data home", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(cfg.DBDir) != AppName {
			t.Errorf("expected DBDir to end in '%s', got '%s'", AppName, cfg.DBDir)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests can modify specific fields to test validation rules.
	validConfig := func() *Config {
		return &Config{
			Targets:     []string{"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"},
			RPCEndpoint: DefaultRPCEndpoint,
			Timeout:     60 * time.Second,
			MaxHistory:  100,
			BatchSize:   4,
			TargetType:  "wallet",
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing targets returns ErrNoTarget", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = nil
		if err := cfg.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("empty RPC endpoint returns ErrNoRPCEndpoint", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.RPCEndpoint = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoRPCEndpoint) {
			t.Errorf("expected ErrNoRPCEndpoint, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("zero history limit returns ErrInvalidMaxHistory", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxHistory = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxHistory) {
			t.Errorf("expected ErrInvalidMaxHistory, got %v", err)
		}
	})

	t.Run("negative batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("json and markdown together returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("unknown target type returns ErrInvalidTargetType", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.TargetType = "account"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTargetType) {
			t.Errorf("expected ErrInvalidTargetType, got %v", err)
		}
	})
}

// TestLoadConfigFile tests YAML parsing of the .solscan file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads custom labels", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `labels:
  9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM:
    name: My Deposit Address
    type: exchange
    description: personal deposit address
  somebase58address11111111111111111111111111:
    name: Friend
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cf.Labels) != 2 {
			t.Fatalf("expected 2 labels, got %d", len(cf.Labels))
		}
		if cf.Labels["9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"].Type != "exchange" {
			t.Errorf("unexpected label: %+v", cf.Labels)
		}

		labels := cf.ModelLabels()
		if len(labels) != 2 {
			t.Fatalf("expected 2 model labels, got %d", len(labels))
		}
		for _, label := range labels {
			if label.Name == "Friend" && label.Type != "other" {
				t.Errorf("expected empty type to default to 'other', got '%s'", label.Type)
			}
		}
	})

	t.Run("per-target overrides", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `targets:
  wallet-a:
    maxHistory: 500
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if got := cf.MaxHistoryFor("wallet-a", 100); got != 500 {
			t.Errorf("expected override 500, got %d", got)
		}
		if got := cf.MaxHistoryFor("wallet-b", 100); got != 100 {
			t.Errorf("expected fallback 100, got %d", got)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("labels: [not a map"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestFindConfigFile tests the explicit-path branch of the search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("labels: {}\n"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected '%s', got '%s'", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty path, got '%s'", got)
		}
	})
}
