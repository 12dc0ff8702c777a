package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/solscan/internal/model"
)

// Default configuration values.
// These values are chosen to work with public Solana RPC endpoints,
// which enforce aggressive rate limits on anonymous clients.
const (
	// DefaultRPCEndpoint is the public Solana mainnet RPC endpoint.
	// Public endpoints are heavily rate limited; users with an RPC
	// provider account should override this via the --rpc flag.
	DefaultRPCEndpoint = "https://api.mainnet-beta.solana.com"

	// DefaultTimeout is set to 60 seconds because fetching a full
	// transaction history means one RPC round trip per signature, and
	// rate-limit backoff can stretch a scan well past a single request's
	// latency. This bounds the whole collection phase, not one request.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxHistory caps the number of transactions fetched per
	// target. 100 transactions is enough for the behavioral heuristics
	// (timing, reuse, sequences) to produce meaningful results while
	// keeping scans fast on rate-limited endpoints.
	DefaultMaxHistory = 100

	// DefaultBatchSize of 4 concurrent scans balances throughput with
	// RPC rate limits. Higher values trigger 429 responses on public
	// endpoints; lower values are safer but slower for large scan lists.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "solscan"
)

// Config holds all configuration options for solscan.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RPCConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// RPCEndpoint is the Solana JSON-RPC endpoint URL used to fetch
	// on-chain data. All network operations go through this endpoint.
	RPCEndpoint string

	// Timeout bounds the collection phase of a single scan.
	// This covers all RPC round trips for one target, including retries.
	Timeout time.Duration

	// MaxHistory is the maximum number of transactions fetched per
	// wallet or program target. Single-transaction scans ignore it.
	MaxHistory int

	// BatchSize is the number of targets scanned concurrently when
	// multiple targets are given.
	BatchSize int

	// Verbose enables debug-level logging.
	Verbose bool

	// ConfigFilePath is the path to the .solscan configuration file.
	// Empty means search the current and home directories.
	ConfigFilePath string

	// Labels holds custom address labels loaded from the config file.
	// These supplement and override the bundled label set.
	Labels *File

	// JSONReport outputs the report as JSON instead of plain text.
	JSONReport bool

	// MarkdownReport outputs the report as Markdown instead of plain text.
	MarkdownReport bool

	// ReportFile is the path to write the report to.
	// Empty means write to stdout.
	ReportFile string

	// TargetType is the kind of target being scanned:
	// "wallet", "transaction", or "program".
	TargetType string

	// DBDir is the directory for the scan history database.
	// Defaults to the XDG data directory (~/.local/share/solscan on Linux).
	DBDir string

	// NoHistory disables persisting reports to the history database.
	NoHistory bool

	// Targets are the addresses or signatures to scan.
	Targets []string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, endpoint).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		RPCEndpoint: DefaultRPCEndpoint,
		Timeout:     DefaultTimeout,
		MaxHistory:  DefaultMaxHistory,
		BatchSize:   DefaultBatchSize,
		TargetType:  string(model.TargetWallet),
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for solscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/solscan
// On macOS: ~/Library/Application Support/solscan
// On Windows: %LOCALAPPDATA%\solscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for solscan.
// On Linux: ~/.config/solscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Kind returns the TargetType as a model.TargetKind.
// Validate must have been called first.
func (c *Config) Kind() model.TargetKind {
	return model.TargetKind(c.TargetType)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one target to scan
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// RPC endpoint is required for all network operations
	if c.RPCEndpoint == "" {
		return ErrNoRPCEndpoint
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// MaxHistory must be positive; zero would mean an empty scan
	if c.MaxHistory <= 0 {
		return ErrInvalidMaxHistory
	}

	// BatchSize must be positive; zero would mean no scanning
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	switch model.TargetKind(c.TargetType) {
	case model.TargetWallet, model.TargetTransaction, model.TargetProgram:
	default:
		return ErrInvalidTargetType
	}

	return nil
}
