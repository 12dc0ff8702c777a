package heuristic

import (
	"fmt"
	"sort"

	"github.com/nao1215/solscan/internal/model"
)

// fingerprintDetector looks for behavioral fingerprints in how transactions
// are constructed: recurring instruction-program sequences, repeated use of
// uncommon programs, and reused program-derived addresses.
type fingerprintDetector struct{}

func (d *fingerprintDetector) ID() string   { return "fingerprint" }
func (d *fingerprintDetector) Name() string { return "Instruction Fingerprinting" }

// commonPrograms is the allowlist of programs so widely used that their
// presence says nothing about a particular wallet.
var commonPrograms = map[string]bool{
	"11111111111111111111111111111111":             true, // system
	"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA":  true, // token
	"TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb":  true, // token-2022
	"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL": true, // associated token account
	"Stake11111111111111111111111111111111111111":  true, // stake
	"Vote111111111111111111111111111111111111111":  true, // vote
	"MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr":  true, // memo
	"Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo":  true, // memo v1
	"ComputeBudget111111111111111111111111111111":  true, // compute budget
	"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4":  true, // jupiter
	"675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8": true, // raydium
	"whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc":  true, // orca
}

func (d *fingerprintDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	var signals []model.Signal
	if s := d.repeatedSequences(scanCtx); s != nil {
		signals = append(signals, *s)
	}
	if s := d.distinctivePrograms(scanCtx); s != nil {
		signals = append(signals, *s)
	}
	if s := d.pdaReuse(scanCtx); s != nil {
		signals = append(signals, *s)
	}
	return signals, nil
}

// repeatedSequences flags instruction-program sequences recurring in at
// least max(3, 20% of transactions) transactions. The signal is MEDIUM when
// the dominant sequence covers more than half of all transactions.
func (d *fingerprintDetector) repeatedSequences(scanCtx *model.ScanContext) *model.Signal {
	total := scanCtx.TransactionCount
	if total == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, meta := range scanCtx.Transactions {
		if meta.SequenceKey != "" {
			counts[meta.SequenceKey]++
		}
	}

	threshold := countThreshold(total, 0.20, 3)
	type seq struct {
		key   string
		count int
	}
	var qualifying []seq
	for key, count := range counts {
		if count >= threshold {
			qualifying = append(qualifying, seq{key: key, count: count})
		}
	}
	if len(qualifying) == 0 {
		return nil
	}
	sort.Slice(qualifying, func(i, j int) bool {
		if qualifying[i].count != qualifying[j].count {
			return qualifying[i].count > qualifying[j].count
		}
		return qualifying[i].key < qualifying[j].key
	})

	dominantShare := float64(qualifying[0].count) / float64(total)
	severity := model.SeverityLow
	if dominantShare > 0.5 {
		severity = model.SeverityMedium
	}

	evidence := make([]model.Evidence, 0, len(qualifying))
	for _, q := range qualifying {
		share := float64(q.count) / float64(total)
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("sequence %q recurs in %d of %d transactions", q.key, q.count, total),
			Type:        model.EvidenceSequence,
			Data:        model.SequenceEvidence{Sequence: q.key, Count: q.count, Share: share},
		})
	}
	reason := fmt.Sprintf("%d instruction sequence(s) recur across transactions; the dominant one covers %.0f%% of activity.",
		len(qualifying), dominantShare*100)
	signal := newSignal(model.SignalRepeatedSequence, severity, reason, evidence)
	signal.Confidence = model.Confidence(dominantShare)
	return &signal
}

// distinctivePrograms flags repeated use of programs outside the common
// allowlist. At least two programs must each reach max(2, 15% of
// transactions) invocations.
func (d *fingerprintDetector) distinctivePrograms(scanCtx *model.ScanContext) *model.Signal {
	total := scanCtx.TransactionCount
	if total == 0 || len(scanCtx.ProgramCounts) == 0 {
		return nil
	}

	threshold := countThreshold(total, 0.15, 2)
	var programs []string
	for program, count := range scanCtx.ProgramCounts {
		if !commonPrograms[program] && count >= threshold {
			programs = append(programs, program)
		}
	}
	if len(programs) < 2 {
		return nil
	}
	sort.Strings(programs)

	evidence := make([]model.Evidence, 0, len(programs))
	for _, program := range programs {
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("uncommon program %s invoked %d time(s)", program, scanCtx.ProgramCounts[program]),
			Reference:   program,
			Type:        model.EvidenceProgramUsage,
			Data:        model.ProgramUsageEvidence{Program: program, Count: scanCtx.ProgramCounts[program]},
		})
	}
	reason := fmt.Sprintf("%d uncommon programs are used repeatedly, narrowing the anonymity set.", len(programs))
	signal := newSignal(model.SignalDistinctivePrograms, model.SeverityLow, reason, evidence)
	return &signal
}

// pdaReuse flags program-derived addresses referenced by more than one
// transaction. MEDIUM when any address is referenced by more than three.
func (d *fingerprintDetector) pdaReuse(scanCtx *model.ScanContext) *model.Signal {
	var reused []string
	severity := model.SeverityLow
	for addr, count := range scanCtx.PDACounts {
		if count <= 1 {
			continue
		}
		reused = append(reused, addr)
		if count > 3 {
			severity = model.SeverityMedium
		}
	}
	if len(reused) == 0 {
		return nil
	}
	sort.Strings(reused)

	evidence := make([]model.Evidence, 0, len(reused))
	for _, addr := range reused {
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("derived address %s referenced by %d transactions", addr, scanCtx.PDACounts[addr]),
			Reference:   addr,
			Type:        model.EvidencePDA,
			Data:        model.PDAEvidence{Address: addr, Count: scanCtx.PDACounts[addr]},
		})
	}
	reason := fmt.Sprintf("%d program-derived address(es) recur across transactions.", len(reused))
	signal := newSignal(model.SignalPDAReuse, severity, reason, evidence)
	return &signal
}
