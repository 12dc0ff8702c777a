package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/solscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables evidence details in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with evidence details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.PrivacyReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSignals(&sb, report)
	w.writeKnownEntities(&sb, report)
	w.writeMitigations(&sb, report)
	w.writeWarnings(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.PrivacyReport) {
	divider := strings.Repeat("=", 64)
	sb.WriteString(divider + "\n")
	sb.WriteString("PRIVACY SCAN REPORT\n")
	sb.WriteString(divider + "\n")
	fmt.Fprintf(sb, "Target:       %s (%s)\n", report.Target, report.TargetType)
	fmt.Fprintf(sb, "Scanned:      %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Transactions: %d\n", report.Summary.TransactionsAnalyzed)
	fmt.Fprintf(sb, "Overall Risk: %s\n", report.OverallRisk)
	fmt.Fprintf(sb, "Signals:      %d total (%d high, %d medium, %d low)\n",
		report.Summary.TotalSignals,
		report.Summary.HighRiskSignals,
		report.Summary.MediumRiskSignals,
		report.Summary.LowRiskSignals,
	)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSignals(sb *strings.Builder, report *model.PrivacyReport) {
	sb.WriteString("SIGNALS\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")

	if len(report.Signals) == 0 {
		sb.WriteString("No privacy risk signals detected.\n\n")
		return
	}

	for i, signal := range report.Signals {
		fmt.Fprintf(sb, "%d. [%s] %s\n", i+1, signal.Severity, signal.Name)
		fmt.Fprintf(sb, "   %s\n", signal.Reason)
		if w.verbose {
			for _, e := range signal.Evidence {
				fmt.Fprintf(sb, "   - %s\n", e.Description)
			}
			fmt.Fprintf(sb, "   Mitigation: %s\n", signal.Mitigation)
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeKnownEntities(sb *strings.Builder, report *model.PrivacyReport) {
	if len(report.KnownEntities) == 0 {
		return
	}

	sb.WriteString("KNOWN ENTITIES\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, entity := range report.KnownEntities {
		fmt.Fprintf(sb, "- %s (%s): %s\n", entity.Name, entity.Type, entity.Address)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeMitigations(sb *strings.Builder, report *model.PrivacyReport) {
	sb.WriteString("MITIGATIONS\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, m := range report.Mitigations {
		fmt.Fprintf(sb, "- %s\n", m)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.PrivacyReport) {
	if len(report.Warnings) == 0 {
		return
	}

	sb.WriteString("WARNINGS\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, warning := range report.Warnings {
		fmt.Fprintf(sb, "- %s\n", warning)
	}
	sb.WriteString("\n")
}
