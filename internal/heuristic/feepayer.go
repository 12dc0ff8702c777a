package heuristic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nao1215/solscan/internal/model"
)

// feePayerDetector checks who paid the network fees for the target's
// transactions. Fee payment links wallets publicly, so external payers are
// a strong clustering signal.
type feePayerDetector struct{}

func (d *feePayerDetector) ID() string   { return "fee_payer" }
func (d *feePayerDetector) Name() string { return "Fee Payer Analysis" }

type payerStats struct {
	payer        string
	transactions int
	signerSets   map[string]bool
}

func (d *feePayerDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	switch scanCtx.Kind {
	case model.TargetWallet:
		return d.evaluateWallet(scanCtx), nil
	case model.TargetProgram:
		return d.evaluateProgram(scanCtx), nil
	default:
		// A single transaction has no self-payment baseline to compare
		// against.
		return nil, nil
	}
}

// collectPayers aggregates fee payer statistics, excluding the given
// address. The result is sorted by payer address for determinism.
func collectPayers(scanCtx *model.ScanContext, exclude string) []*payerStats {
	byPayer := make(map[string]*payerStats)
	for _, meta := range scanCtx.Transactions {
		if meta.FeePayer == "" || meta.FeePayer == exclude {
			continue
		}
		stats, ok := byPayer[meta.FeePayer]
		if !ok {
			stats = &payerStats{payer: meta.FeePayer, signerSets: make(map[string]bool)}
			byPayer[meta.FeePayer] = stats
		}
		stats.transactions++
		if len(meta.Signers) > 0 {
			set := append([]string{}, meta.Signers...)
			sort.Strings(set)
			stats.signerSets[strings.Join(set, ",")] = true
		}
	}

	out := make([]*payerStats, 0, len(byPayer))
	for _, stats := range byPayer {
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].payer < out[j].payer })
	return out
}

// evaluateWallet emits signals for a wallet that does not always fund its
// own fees. A wallet that never self-pays gets a single unconditional HIGH
// signal; otherwise each external payer gets its own signal, escalated when
// the payer is a known entity or funded more than one transaction.
func (d *feePayerDetector) evaluateWallet(scanCtx *model.ScanContext) []model.Signal {
	selfPaid := 0
	for _, meta := range scanCtx.Transactions {
		if meta.FeePayer == scanCtx.Target {
			selfPaid++
		}
	}
	externals := collectPayers(scanCtx, scanCtx.Target)
	if len(externals) == 0 {
		return nil
	}

	if selfPaid == 0 {
		evidence := make([]model.Evidence, 0, len(externals))
		for _, stats := range externals {
			evidence = append(evidence, model.Evidence{
				Description: fmt.Sprintf("%s paid fees for %d transaction(s)", stats.payer, stats.transactions),
				Reference:   stats.payer,
				Type:        model.EvidenceFeePayer,
				Data:        model.FeePayerEvidence{Payer: stats.payer, Transactions: stats.transactions},
			})
		}
		reason := fmt.Sprintf("The wallet never paid its own fees across %d transaction(s); all fees came from %d external payer(s).",
			len(scanCtx.Transactions), len(externals))
		return []model.Signal{newSignal(model.SignalFeePayerNeverSelf, model.SeverityHigh, reason, evidence)}
	}

	signals := make([]model.Signal, 0, len(externals))
	for _, stats := range externals {
		severity := model.SeverityMedium
		label, known := scanCtx.LabelFor(stats.payer)
		if known || stats.transactions > 1 {
			severity = model.SeverityHigh
		}

		desc := fmt.Sprintf("%s paid fees for %d transaction(s)", stats.payer, stats.transactions)
		if known {
			desc = fmt.Sprintf("%s (%s) paid fees for %d transaction(s)", stats.payer, label.Name, stats.transactions)
		}
		evidence := []model.Evidence{{
			Description: desc,
			Reference:   stats.payer,
			Type:        model.EvidenceFeePayer,
			Data:        model.FeePayerEvidence{Payer: stats.payer, Transactions: stats.transactions},
		}}
		reason := fmt.Sprintf("An external wallet paid fees for %d of %d transaction(s).",
			stats.transactions, len(scanCtx.Transactions))
		signals = append(signals, newSignal(model.SignalFeePayerExternal, severity, reason, evidence))
	}
	return signals
}

// evaluateProgram flags fee payers funding more than one distinct signer
// set, which indicates a single operator behind apparently independent
// wallets interacting with the program.
func (d *feePayerDetector) evaluateProgram(scanCtx *model.ScanContext) []model.Signal {
	var signals []model.Signal
	for _, stats := range collectPayers(scanCtx, scanCtx.Target) {
		if len(stats.signerSets) <= 1 {
			continue
		}
		evidence := []model.Evidence{{
			Description: fmt.Sprintf("%s funded %d distinct signer set(s) across %d transaction(s)",
				stats.payer, len(stats.signerSets), stats.transactions),
			Reference: stats.payer,
			Type:      model.EvidenceFeePayer,
			Data: model.FeePayerEvidence{
				Payer:        stats.payer,
				Transactions: stats.transactions,
				SignerSets:   len(stats.signerSets),
			},
		}}
		reason := fmt.Sprintf("Fee payer %s funded transactions for %d distinct signer sets.",
			stats.payer, len(stats.signerSets))
		signals = append(signals, newSignal(model.SignalFeePayerMultiSigner, model.SeverityHigh, reason, evidence))
	}
	return signals
}
