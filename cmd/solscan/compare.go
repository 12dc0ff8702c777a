package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/solscan/internal/config"
	"github.com/nao1215/solscan/internal/database"
	"github.com/nao1215/solscan/internal/model"
)

// Constants for risk direction and summary messages.
const (
	riskDirectionWorsened  = "worsened"
	riskDirectionImproved  = "improved"
	riskDirectionUnchanged = "unchanged"
	noSignalsMessage       = "No signals"
)

// NewCompareCmd creates the compare command.
// This command compares scan results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [address or signature]",
		Short: "Compare scan results with historical data",
		Long: `Compare displays differences between the current and previous scan results.

This command retrieves historical scan data from the database and shows:
- New privacy signals that appeared since the last scan
- Resolved signals that are no longer present
- Changes in the overall risk level

The comparison requires at least two scans in the database for the specified
target. Use 'solscan scan' to perform scans and save results.

Examples:
  # Compare latest two scans for a wallet
  solscan compare 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM

  # List all scan history for a wallet
  solscan compare --list 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM

  # Compare with a specific historical scan by ID
  solscan compare --with-scan-id 5 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM

  # Output comparison in JSON format
  solscan compare --json 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM

  # List all scanned targets in the database
  solscan compare --list-targets`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List scan history for the specified target")
	cmd.Flags().BoolP("list-targets", "L", false,
		"List all scanned targets in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-scan-id", "i", 0,
		"Compare with a specific scan by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listTargets, err := cmd.Flags().GetBool("list-targets")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	var target string
	if !listTargets {
		if len(args) == 0 {
			return errors.New("target is required (use --list-targets to see available targets)")
		}
		target = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listTargets {
		return listScannedTargets(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listScanHistory(ctx, db, target)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	withScanID, err := cmd.Flags().GetInt64("with-scan-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, target, withScanID, jsonOutput)
}

// listScannedTargets lists all targets that have scan records in the database.
func listScannedTargets(ctx context.Context, db *database.HistoryDB) error {
	targets, err := db.ListTargets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	if len(targets) == 0 {
		fmt.Println("No scanned targets found in the database.")
		fmt.Println("\nUse 'solscan scan <address>' to scan a target.")
		return nil
	}

	fmt.Printf("Scanned targets (%d):\n\n", len(targets))
	for _, target := range targets {
		fmt.Printf("  • %s\n", target)
	}
	fmt.Println("\nUse 'solscan compare --list <address>' to see scan history for a target.")

	return nil
}

// listScanHistory lists all scan records for a specific target.
func listScanHistory(ctx context.Context, db *database.HistoryDB, target string) error {
	history, err := db.History(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(history) == 0 {
		fmt.Printf("No scan history found for %s\n", target)
		fmt.Println("\nUse 'solscan scan' to scan this target.")
		return nil
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", target, len(history))
	fmt.Printf("  %-6s  %-20s  %-8s  %s\n", "ID", "Date", "Risk", "Signals")
	fmt.Println("  " + strings.Repeat("-", 50))

	for _, meta := range history {
		fmt.Printf("  %-6d  %-20s  %-8s  %d\n",
			meta.ID,
			meta.ScannedAt.Format("2006-01-02 15:04:05"),
			meta.OverallRisk,
			meta.TotalSignals,
		)
	}

	fmt.Println("\nUse 'solscan compare <address>' to compare the latest two scans.")
	fmt.Println("Use 'solscan compare --with-scan-id <id> <address>' to compare with a specific scan.")

	return nil
}

// runComparison performs the actual comparison between scan reports.
func runComparison(ctx context.Context, db *database.HistoryDB, target string, withScanID int64, jsonOutput bool) error {
	reports, err := db.LatestReports(ctx, target, 2)
	if err != nil {
		return fmt.Errorf("failed to get scan reports: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no scan history found for %s", target)
	}
	if len(reports) < 2 && withScanID == 0 {
		return fmt.Errorf("at least 2 scans are required for comparison (found %d)", len(reports))
	}

	// Latest report is always the current one
	current := reports[0]

	var previous *model.PrivacyReport
	if withScanID > 0 {
		previous, err = db.ReportByID(ctx, withScanID)
		if err != nil {
			return fmt.Errorf("failed to get scan with ID %d: %w", withScanID, err)
		}
		if previous == nil {
			return fmt.Errorf("scan with ID %d not found", withScanID)
		}
		if previous.Target != target {
			return fmt.Errorf("scan ID %d belongs to %s, not %s", withScanID, previous.Target, target)
		}
	} else {
		previous = reports[1]
	}

	comparison := compareReports(previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two scan reports.
type ComparisonResult struct {
	// Target is the scanned address or signature.
	Target string `json:"target"`

	// PreviousScan contains metadata about the previous scan.
	PreviousScan ComparedScan `json:"previousScan"`

	// CurrentScan contains metadata about the current scan.
	CurrentScan ComparedScan `json:"currentScan"`

	// NewSignals contains signals that are new in the current scan.
	NewSignals []model.Signal `json:"newSignals,omitempty"`

	// ResolvedSignals contains signals present previously but not now.
	ResolvedSignals []model.Signal `json:"resolvedSignals,omitempty"`

	// UnchangedCount is the number of signals present in both scans.
	UnchangedCount int `json:"unchangedCount"`

	// RiskChange describes the overall change in risk level.
	RiskChange RiskChange `json:"riskChange"`
}

// ComparedScan contains metadata about one scan for comparison display.
type ComparedScan struct {
	// ScannedAt is when the scan was performed.
	ScannedAt time.Time `json:"scannedAt"`

	// OverallRisk is the scan's overall risk level.
	OverallRisk string `json:"overallRisk"`

	// TotalSignals is the total number of signals in this scan.
	TotalSignals int `json:"totalSignals"`

	// HighCount is the number of high severity signals.
	HighCount int `json:"highCount"`

	// MediumCount is the number of medium severity signals.
	MediumCount int `json:"mediumCount"`

	// LowCount is the number of low severity signals.
	LowCount int `json:"lowCount"`
}

// RiskChange describes the change in risk level between scans.
type RiskChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// HighDelta is the change in high severity signal count.
	HighDelta int `json:"highDelta"`

	// MediumDelta is the change in medium severity signal count.
	MediumDelta int `json:"mediumDelta"`

	// LowDelta is the change in low severity signal count.
	LowDelta int `json:"lowDelta"`
}

// compareReports compares two scan reports and generates a comparison result.
func compareReports(previous, current *model.PrivacyReport) *ComparisonResult {
	result := &ComparisonResult{
		Target:       current.Target,
		PreviousScan: comparedScan(previous),
		CurrentScan:  comparedScan(current),
	}

	// Signals are keyed by ID: a detector either fires or it doesn't,
	// and severity changes show up in the count deltas.
	previousSignals := make(map[string]model.Signal)
	for _, s := range previous.Signals {
		previousSignals[s.ID] = s
	}
	currentSignals := make(map[string]model.Signal)
	for _, s := range current.Signals {
		currentSignals[s.ID] = s
	}

	for _, s := range current.Signals {
		if _, exists := previousSignals[s.ID]; !exists {
			result.NewSignals = append(result.NewSignals, s)
		}
	}
	for _, s := range previous.Signals {
		if _, exists := currentSignals[s.ID]; !exists {
			result.ResolvedSignals = append(result.ResolvedSignals, s)
		} else {
			result.UnchangedCount++
		}
	}

	result.RiskChange = calculateRiskChange(result.PreviousScan, result.CurrentScan)

	return result
}

// comparedScan extracts display metadata from a report.
func comparedScan(report *model.PrivacyReport) ComparedScan {
	return ComparedScan{
		ScannedAt:    report.Timestamp,
		OverallRisk:  report.OverallRisk.String(),
		TotalSignals: report.Summary.TotalSignals,
		HighCount:    report.Summary.HighRiskSignals,
		MediumCount:  report.Summary.MediumRiskSignals,
		LowCount:     report.Summary.LowRiskSignals,
	}
}

// calculateRiskChange calculates the change in risk between two scans.
func calculateRiskChange(previous, current ComparedScan) RiskChange {
	change := RiskChange{
		HighDelta:   current.HighCount - previous.HighCount,
		MediumDelta: current.MediumCount - previous.MediumCount,
		LowDelta:    current.LowCount - previous.LowCount,
	}

	// Determine overall direction based on weighted score.
	// High severity changes have more weight.
	previousScore := previous.HighCount*50 + previous.MediumCount*10 + previous.LowCount
	currentScore := current.HighCount*50 + current.MediumCount*10 + current.LowCount

	switch {
	case currentScore < previousScore:
		change.Direction = riskDirectionImproved
	case currentScore > previousScore:
		change.Direction = riskDirectionWorsened
	default:
		change.Direction = riskDirectionUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Scan Comparison: %s\n", result.Target)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nRisk Status: %s\n", formatRiskDirection(result.RiskChange.Direction))
	fmt.Printf("Overall Risk: %s -> %s\n", result.PreviousScan.OverallRisk, result.CurrentScan.OverallRisk)

	fmt.Printf("\nPrevious scan: %s\n", result.PreviousScan.ScannedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current scan:  %s\n", result.CurrentScan.ScannedAt.Format("2006-01-02 15:04:05"))

	fmt.Println("\nSignal Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "High",
		result.PreviousScan.HighCount, result.CurrentScan.HighCount,
		formatDelta(result.RiskChange.HighDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Medium",
		result.PreviousScan.MediumCount, result.CurrentScan.MediumCount,
		formatDelta(result.RiskChange.MediumDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Low",
		result.PreviousScan.LowCount, result.CurrentScan.LowCount,
		formatDelta(result.RiskChange.LowDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousScan.TotalSignals, result.CurrentScan.TotalSignals,
		formatDelta(result.CurrentScan.TotalSignals-result.PreviousScan.TotalSignals))

	if len(result.NewSignals) > 0 {
		fmt.Printf("\nNew Signals (%d):\n", len(result.NewSignals))
		for _, s := range result.NewSignals {
			fmt.Printf("  [+] [%s] %s\n", s.Severity, s.Name)
		}
	}

	if len(result.ResolvedSignals) > 0 {
		fmt.Printf("\nResolved Signals (%d):\n", len(result.ResolvedSignals))
		for _, s := range result.ResolvedSignals {
			fmt.Printf("  [-] [%s] %s\n", s.Severity, s.Name)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d signals\n", result.UnchangedCount)
	}
	if len(result.NewSignals) == 0 && len(result.ResolvedSignals) == 0 && result.UnchangedCount == 0 {
		fmt.Printf("\n%s in either scan.\n", noSignalsMessage)
	}

	return nil
}

// formatRiskDirection formats the risk change direction for display.
func formatRiskDirection(direction string) string {
	switch direction {
	case riskDirectionImproved:
		return "IMPROVED (risk decreased)"
	case riskDirectionWorsened:
		return "WORSENED (risk increased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
