package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/solscan/internal/config"
	"github.com/nao1215/solscan/internal/database"
	"github.com/nao1215/solscan/internal/heuristic"
	"github.com/nao1215/solscan/internal/labels"
	"github.com/nao1215/solscan/internal/ledger"
	"github.com/nao1215/solscan/internal/log"
	"github.com/nao1215/solscan/internal/normalize"
	"github.com/nao1215/solscan/internal/pipeline"
	"github.com/nao1215/solscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [address or signature]",
		Short: "Scan a Solana address or transaction for privacy risks",
		Long: `Scan analyzes the public on-chain activity of a Solana target and reports
privacy and traceability risks:

- Links to exchanges, bridges, and other publicly labeled entities
- Behavioral fingerprints (repeated instruction sequences, PDA reuse)
- Timing patterns and transaction bursts
- Direct traceability (amount reuse, counterparty reuse, signer overlap)
- Metadata leaks in memo fields (emails, phone numbers, URLs)

Examples:
  # Scan a wallet address
  solscan scan 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM

  # Scan a single transaction by signature
  solscan scan --type transaction 5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tpr...

  # Scan a program's recent activity
  solscan scan --type program JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4

  # Scan multiple wallets concurrently
  solscan scan wallet1... wallet2... wallet3...

  # Use a custom RPC endpoint and output JSON
  solscan scan --rpc https://my-provider.example/rpc --json wallet1...

Configuration file (.solscan) example:
  labels:
    9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM:
      name: My Exchange Deposit
      type: exchange`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// RPC flags
	cmd.Flags().StringP("rpc", "r", config.DefaultRPCEndpoint,
		"Solana JSON-RPC endpoint URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for the collection phase of each scan")
	cmd.Flags().IntP("limit", "l", config.DefaultMaxHistory,
		"Maximum number of transactions to fetch per target")

	// Scan behavior flags
	cmd.Flags().StringP("type", "T", "wallet",
		"Target type: wallet, transaction, or program")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .solscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not save the report to the scan history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with secret sanitization
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.RPCEndpoint, err = cmd.Flags().GetString("rpc")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxHistory, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, err
	}

	cfg.TargetType, err = cmd.Flags().GetString("type")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load custom labels from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Labels, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Labels = &config.File{Labels: make(map[string]config.LabelConfig)}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoHistory, err = cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the scan targets
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"type", cfg.TargetType,
		"endpoint", cfg.RPCEndpoint,
		"batchSize", cfg.BatchSize,
	)

	// Open the history database unless disabled
	var db *database.HistoryDB
	if !cfg.NoHistory {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Assemble the scan pipeline components
	resolver := labels.NewStaticResolver(cfg.Labels.ModelLabels())
	collector := ledger.NewCollector(ledger.NewRPCClient(cfg.RPCEndpoint), logger)
	normalizer := normalize.New(resolver, logger)
	engine := heuristic.NewEngine(logger)

	// newPipeline builds a pipeline for one target, honoring per-target
	// history overrides from the config file.
	newPipeline := func(target string) *pipeline.Pipeline {
		opts := ledger.CollectOptions{
			MaxHistory: cfg.Labels.MaxHistoryFor(target, cfg.MaxHistory),
		}
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(pipeline.DefaultSteps(collector, normalizer, engine, opts)...)
		return p
	}

	// Use the batch processor for parallel scanning if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, newPipeline, db, logger)
	}
	return runSequentialScan(ctx, cfg, newPipeline, db, logger)
}

// runSequentialScan scans targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, newPipeline func(string) *pipeline.Pipeline, db *database.HistoryDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Scanning %s...\n", target)
		startTime := time.Now()

		scan := pipeline.NewScan(target, cfg.Kind())

		// The timeout bounds one target's collection and analysis
		scanCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		err := newPipeline(target).Execute(scanCtx, scan)
		cancel()
		if err != nil {
			logger.Error("scan failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, scan); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		if err := saveReport(ctx, db, scan, logger); err != nil {
			logger.Error("failed to save scan report", "target", target, "error", err)
		}
	}

	return nil
}

// runBatchScan scans multiple targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, newPipeline func(string) *pipeline.Pipeline, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	// The batch processor shares one pipeline factory, so per-target
	// history overrides only apply in sequential mode.
	if cfg.Labels != nil && len(cfg.Labels.Targets) > 0 {
		logger.Warn("per-target overrides are ignored in batch mode; use --batch 1 to apply them",
			"targetCount", len(cfg.Labels.Targets))
	}

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(func() *pipeline.Pipeline { return newPipeline("") },
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Targets, cfg.Kind())
	if err != nil {
		return fmt.Errorf("batch scan failed: %w", err)
	}

	for i, scan := range results {
		if scan == nil {
			continue
		}
		fmt.Printf("[%d/%d] Scan completed: %s\n", i+1, len(results), scan.Target)

		if scan.ErrorMessage != "" {
			fmt.Fprintf(os.Stderr, "Scan error for %s: %s\n", scan.Target, scan.ErrorMessage)
			continue
		}
		if err := outputReport(cfg, scan); err != nil {
			logger.Error("report failed", "target", scan.Target, "error", err)
		}
		if err := saveReport(ctx, db, scan, logger); err != nil {
			logger.Error("failed to save scan report", "target", scan.Target, "error", err)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	return nil
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scan *pipeline.Scan) error {
	if scan.Report == nil {
		return fmt.Errorf("no report produced for %s", scan.Target)
	}

	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports describe a user's privacy exposure, so restrict them
		// to the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(scan.Report)
	return err
}

// saveReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.HistoryDB, scan *pipeline.Scan, logger *slog.Logger) error {
	if db == nil || scan.Report == nil {
		return nil
	}

	if err := db.SaveReport(ctx, scan.Report); err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "target", scan.Target)
	return nil
}
