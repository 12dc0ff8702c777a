package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/solscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.PrivacyReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeSignals(md, report)
	w.writeKnownEntities(md, report)
	w.writeMitigations(md, report)
	w.writeWarnings(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.PrivacyReport) {
	md.H1("Privacy Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target + "`"},
			{"Target Type", string(report.TargetType)},
			{"Scan Date", report.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Transactions Analyzed", strconv.Itoa(report.Summary.TransactionsAnalyzed)},
			{"Overall Risk", w.riskBadge(report.OverallRisk)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) riskBadge(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "🔴 HIGH"
	case model.SeverityMedium:
		return "🟡 MEDIUM"
	default:
		return "🟢 LOW"
	}
}

// writeSummary writes the severity summary section with a pie chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.PrivacyReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(report.Summary.HighRiskSignals)},
			{"🟡 Medium", strconv.Itoa(report.Summary.MediumRiskSignals)},
			{"🟢 Low", strconv.Itoa(report.Summary.LowRiskSignals)},
			{"**Total**", "**" + strconv.Itoa(report.Summary.TotalSignals) + "**"},
		},
	})
	md.PlainText("")

	if report.Summary.TotalSignals > 0 {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.PrivacyReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Signal Severity Distribution"),
		piechart.WithShowData(true),
	)

	if report.Summary.HighRiskSignals > 0 {
		chart.LabelAndIntValue("High", uint64(report.Summary.HighRiskSignals))
	}
	if report.Summary.MediumRiskSignals > 0 {
		chart.LabelAndIntValue("Medium", uint64(report.Summary.MediumRiskSignals))
	}
	if report.Summary.LowRiskSignals > 0 {
		chart.LabelAndIntValue("Low", uint64(report.Summary.LowRiskSignals))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the overall risk.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.PrivacyReport) {
	switch {
	case report.OverallRisk == model.SeverityHigh:
		md.Warningf(
			"High privacy risk. %d high severity signal(s) should be addressed.",
			report.Summary.HighRiskSignals,
		)
	case report.OverallRisk == model.SeverityMedium:
		md.Importantf(
			"Medium privacy risk. %d signal(s) may expose identity or link activity.",
			report.Summary.TotalSignals,
		)
	case report.Summary.TotalSignals > 0:
		md.Note("Only low severity signals detected.")
	default:
		md.Tip("No privacy risk signals detected.")
	}
	md.PlainText("")
}

// writeSignals writes all signals grouped by severity.
func (w *MarkdownWriter) writeSignals(md *markdown.Markdown, report *model.PrivacyReport) {
	md.H2("Signals")
	md.PlainText("")

	if len(report.Signals) == 0 {
		md.PlainText("No privacy risk signals detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityHigh, "### 🔴 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🟢 Low"},
	}

	for _, sev := range severities {
		var group []model.Signal
		for _, s := range report.Signals {
			if s.Severity == sev.level {
				group = append(group, s)
			}
		}
		if len(group) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		for _, signal := range group {
			w.writeSignal(md, signal)
		}
	}
}

// writeSignal writes one signal with its evidence.
func (w *MarkdownWriter) writeSignal(md *markdown.Markdown, signal model.Signal) {
	md.PlainText("#### " + signal.Name)
	md.PlainText("")
	md.PlainText(signal.Reason)
	md.PlainText("")
	md.PlainText("**Impact:** " + signal.Impact)
	md.PlainText("")

	if len(signal.Evidence) > 0 {
		items := make([]string, 0, len(signal.Evidence))
		for _, e := range signal.Evidence {
			item := e.Description
			if e.Reference != "" {
				item = fmt.Sprintf("%s (`%s`)", e.Description, e.Reference)
			}
			items = append(items, item)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	md.PlainText("**Mitigation:** " + signal.Mitigation)
	if signal.Confidence != nil {
		md.PlainText("")
		md.PlainText(fmt.Sprintf("Confidence: %.0f%%", *signal.Confidence*100))
	}
	md.PlainText("")
}

// writeKnownEntities writes the labeled entities observed during the scan.
func (w *MarkdownWriter) writeKnownEntities(md *markdown.Markdown, report *model.PrivacyReport) {
	if len(report.KnownEntities) == 0 {
		return
	}

	md.H2("Known Entities")
	md.PlainText("")

	rows := make([][]string, 0, len(report.KnownEntities))
	for _, entity := range report.KnownEntities {
		rows = append(rows, []string{"`" + entity.Address + "`", entity.Name, entity.Type})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Address", "Name", "Type"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeMitigations writes the aggregated mitigation list.
func (w *MarkdownWriter) writeMitigations(md *markdown.Markdown, report *model.PrivacyReport) {
	md.H2("Mitigations")
	md.PlainText("")
	md.BulletList(report.Mitigations...)
	md.PlainText("")
}

// writeWarnings surfaces collection and normalization warnings so that a
// zero-signal report is not mistaken for a clean one when data collection
// failed.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.PrivacyReport) {
	if len(report.Warnings) == 0 {
		return
	}

	md.H2("Warnings")
	md.PlainText("")
	md.Cautionf("Scan coverage may be incomplete:\n%s", "- "+strings.Join(report.Warnings, "\n- "))
	md.PlainText("")
}
