package report

import (
	"sort"
	"time"

	"github.com/nao1215/solscan/internal/model"
	"github.com/nao1215/solscan/internal/risk"
)

// Build assembles the privacy report for an evaluated scan context,
// stamped with the current time.
func Build(scanCtx *model.ScanContext, signals []model.Signal) *model.PrivacyReport {
	return BuildAt(scanCtx, signals, time.Now().UTC())
}

// BuildAt assembles the privacy report with an explicit generation
// timestamp. Apart from the timestamp the result is a pure function of the
// context and the signal list.
func BuildAt(scanCtx *model.ScanContext, signals []model.Signal, at time.Time) *model.PrivacyReport {
	if signals == nil {
		signals = []model.Signal{}
	}

	return &model.PrivacyReport{
		Version:       model.SchemaVersion,
		Timestamp:     at,
		TargetType:    scanCtx.Kind,
		Target:        scanCtx.Target,
		OverallRisk:   risk.Overall(signals),
		Signals:       signals,
		Summary:       model.NewSummary(signals, scanCtx.TransactionCount),
		Mitigations:   risk.Mitigations(signals),
		KnownEntities: knownEntities(scanCtx),
		Warnings:      append([]string{}, scanCtx.Warnings...),
	}
}

// knownEntities realizes the context's label mapping as a sorted list.
func knownEntities(scanCtx *model.ScanContext) []model.Label {
	out := make([]model.Label, 0, len(scanCtx.Labels))
	for _, label := range scanCtx.Labels {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
