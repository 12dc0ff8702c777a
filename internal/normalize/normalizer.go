package normalize

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"

	"github.com/nao1215/solscan/internal/labels"
	"github.com/nao1215/solscan/internal/ledger"
	"github.com/nao1215/solscan/internal/model"
)

// Normalizer transforms one batch of raw ledger records into a scan context.
type Normalizer struct {
	labels labels.Resolver
	logger *slog.Logger
}

// New creates a Normalizer. If logger is nil, slog.Default() is used.
func New(resolver labels.Resolver, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{labels: resolver, logger: logger}
}

// Normalize builds the scan context for a target from a raw batch.
//
// Malformed records degrade per transaction: a structurally defective record
// is skipped with a warning and contributes nothing to the context. Normalize
// itself never fails.
func (n *Normalizer) Normalize(target string, kind model.TargetKind, batch *ledger.Batch) *model.ScanContext {
	scanCtx := &model.ScanContext{
		Target:        target,
		Kind:          kind,
		Labels:        make(map[string]model.Label),
		ProgramCounts: make(map[string]int),
		PDACounts:     make(map[string]int),
		RentRefunds:   make(map[string]int),
	}
	if batch != nil {
		scanCtx.Warnings = append(scanCtx.Warnings, batch.Warnings...)
	}
	if batch == nil || len(batch.Transactions) == 0 {
		return scanCtx
	}

	for i := range batch.Transactions {
		raw := &batch.Transactions[i]
		if err := validateRecord(raw); err != nil {
			n.logger.Warn("skipping malformed transaction record",
				"signature", raw.Signature,
				"error", err,
			)
			scanCtx.Warnings = append(scanCtx.Warnings,
				fmt.Sprintf("skipped transaction %s: %v", raw.Signature, err))
			continue
		}
		n.normalizeTransaction(scanCtx, raw)
		scanCtx.TransactionCount++
	}

	n.deriveCounterparties(scanCtx)
	n.deriveTimeRange(scanCtx)
	n.deriveBalances(scanCtx, batch)
	n.resolveLabels(scanCtx)

	return scanCtx
}

// validateRecord checks the structural preconditions normalization relies on.
func validateRecord(raw *ledger.RawTransaction) error {
	if len(raw.AccountKeys) == 0 {
		return fmt.Errorf("no account keys")
	}
	if len(raw.PreBalances) != len(raw.AccountKeys) || len(raw.PostBalances) != len(raw.AccountKeys) {
		return fmt.Errorf("balance arrays do not cover %d accounts", len(raw.AccountKeys))
	}
	return nil
}

// normalizeTransaction folds one validated record into the context.
func (n *Normalizer) normalizeTransaction(scanCtx *model.ScanContext, raw *ledger.RawTransaction) {
	meta := model.TransactionMeta{
		Signature: raw.Signature,
		FeePayer:  raw.AccountKeys[0],
		BlockTime: raw.BlockTime,
	}

	numSigners := raw.NumSigners
	if numSigners > len(raw.AccountKeys) {
		numSigners = len(raw.AccountKeys)
	}
	meta.Signers = append(meta.Signers, raw.AccountKeys[:numSigners]...)

	for _, inst := range raw.Instructions {
		if inst.ProgramID == "" {
			continue
		}
		meta.Programs = append(meta.Programs, inst.ProgramID)
		scanCtx.ProgramCounts[inst.ProgramID]++

		category, name := categorize(inst.ProgramID)
		normalized := model.NormalizedInstruction{
			ProgramID: inst.ProgramID,
			Category:  category,
			TxRef:     raw.Signature,
			Timestamp: raw.BlockTime,
		}
		accounts := resolveAccounts(raw.AccountKeys, inst.Accounts)
		if name != "" || len(accounts) > 0 {
			normalized.Payload = &model.InstructionPayload{ProgramName: name, Accounts: accounts}
		}
		scanCtx.Instructions = append(scanCtx.Instructions, normalized)

		if memoPrograms[inst.ProgramID] && utf8.Valid(inst.Data) && len(inst.Data) > 0 {
			meta.Memos = append(meta.Memos, string(inst.Data))
		}
		if tokenPrograms[inst.ProgramID] && len(inst.Data) > 0 && inst.Data[0] == closeAccountInstruction && len(inst.Accounts) >= 2 {
			if dest := accountAt(raw.AccountKeys, inst.Accounts[1]); dest != "" {
				scanCtx.RentRefunds[dest]++
			}
		}
	}
	meta.SequenceKey = strings.Join(meta.Programs, ">")
	scanCtx.Transactions = append(scanCtx.Transactions, meta)

	n.countDerivedAddresses(scanCtx, raw)
	n.reconstructNativeTransfers(scanCtx, raw)
	n.reconstructTokenTransfers(scanCtx, raw)
}

// resolveAccounts maps instruction account indexes to addresses, dropping
// out-of-range indexes.
func resolveAccounts(keys []string, indexes []int) []string {
	var out []string
	for _, idx := range indexes {
		if addr := accountAt(keys, idx); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func accountAt(keys []string, idx int) string {
	if idx < 0 || idx >= len(keys) {
		return ""
	}
	return keys[idx]
}

// countDerivedAddresses counts off-curve accounts referenced by the
// transaction's instructions. Each address counts once per transaction.
// Program ids are excluded so program accounts are not mistaken for PDAs.
func (n *Normalizer) countDerivedAddresses(scanCtx *model.ScanContext, raw *ledger.RawTransaction) {
	programs := make(map[string]bool)
	for _, inst := range raw.Instructions {
		programs[inst.ProgramID] = true
	}

	seen := make(map[string]bool)
	for _, inst := range raw.Instructions {
		for _, idx := range inst.Accounts {
			addr := accountAt(raw.AccountKeys, idx)
			if addr == "" || programs[addr] || seen[addr] {
				continue
			}
			seen[addr] = true

			key, err := solana.PublicKeyFromBase58(addr)
			if err != nil {
				continue
			}
			if !key.IsOnCurve() {
				scanCtx.PDACounts[addr]++
			}
		}
	}
}

// reconstructNativeTransfers derives native transfers from balance deltas.
// Each account whose balance increased is paired with the first account, in
// declaration order, whose balance decreased.
func (n *Normalizer) reconstructNativeTransfers(scanCtx *model.ScanContext, raw *ledger.RawTransaction) {
	sender := ""
	for i := range raw.AccountKeys {
		if raw.PostBalances[i] < raw.PreBalances[i] {
			sender = raw.AccountKeys[i]
			break
		}
	}
	if sender == "" {
		return
	}

	for i := range raw.AccountKeys {
		if raw.PostBalances[i] <= raw.PreBalances[i] {
			continue
		}
		scanCtx.Transfers = append(scanCtx.Transfers, model.Transfer{
			Sender:    sender,
			Receiver:  raw.AccountKeys[i],
			Amount:    raw.PostBalances[i] - raw.PreBalances[i],
			TxRef:     raw.Signature,
			Timestamp: raw.BlockTime,
		})
	}
}

// reconstructTokenTransfers derives token transfers from the per-mint
// balance-delta table keyed by account index.
func (n *Normalizer) reconstructTokenTransfers(scanCtx *model.ScanContext, raw *ledger.RawTransaction) {
	type delta struct {
		index  int
		amount int64
		owner  string
	}
	byMint := make(map[string]map[int]*delta)

	record := func(b ledger.TokenBalance, sign int64) {
		if b.Mint == "" {
			return
		}
		mintDeltas, ok := byMint[b.Mint]
		if !ok {
			mintDeltas = make(map[int]*delta)
			byMint[b.Mint] = mintDeltas
		}
		d, ok := mintDeltas[b.AccountIndex]
		if !ok {
			d = &delta{index: b.AccountIndex}
			mintDeltas[b.AccountIndex] = d
		}
		d.amount += sign * int64(b.Amount)
		if b.Owner != "" {
			d.owner = b.Owner
		}
	}
	for _, b := range raw.PreTokenBalances {
		record(b, -1)
	}
	for _, b := range raw.PostTokenBalances {
		record(b, 1)
	}

	mints := make([]string, 0, len(byMint))
	for mint := range byMint {
		mints = append(mints, mint)
	}
	sort.Strings(mints)

	party := func(d *delta) string {
		if d.owner != "" {
			return d.owner
		}
		return accountAt(raw.AccountKeys, d.index)
	}

	for _, mint := range mints {
		mintDeltas := byMint[mint]
		var positives, negatives []*delta
		for _, d := range mintDeltas {
			switch {
			case d.amount > 0:
				positives = append(positives, d)
			case d.amount < 0:
				negatives = append(negatives, d)
			}
		}
		if len(positives) == 0 || len(negatives) == 0 {
			continue
		}
		sort.Slice(positives, func(i, j int) bool { return positives[i].index < positives[j].index })
		sort.Slice(negatives, func(i, j int) bool { return negatives[i].index < negatives[j].index })

		sender := party(negatives[0])
		for _, p := range positives {
			receiver := party(p)
			if sender == "" || receiver == "" {
				continue
			}
			scanCtx.Transfers = append(scanCtx.Transfers, model.Transfer{
				Sender:    sender,
				Receiver:  receiver,
				Amount:    uint64(p.amount),
				Asset:     mint,
				TxRef:     raw.Signature,
				Timestamp: raw.BlockTime,
			})
		}
	}
}

// deriveCounterparties collects distinct other-party addresses relative to
// the target, sorted for deterministic output.
func (n *Normalizer) deriveCounterparties(scanCtx *model.ScanContext) {
	seen := make(map[string]bool)
	for _, t := range scanCtx.Transfers {
		switch scanCtx.Target {
		case t.Sender:
			seen[t.Receiver] = true
		case t.Receiver:
			seen[t.Sender] = true
		}
	}
	delete(seen, scanCtx.Target)
	delete(seen, "")

	for addr := range seen {
		scanCtx.Counterparties = append(scanCtx.Counterparties, addr)
	}
	sort.Strings(scanCtx.Counterparties)
}

// deriveTimeRange computes the min/max of all available timestamps. Both
// ends stay nil when no timestamped transaction exists.
func (n *Normalizer) deriveTimeRange(scanCtx *model.ScanContext) {
	for _, meta := range scanCtx.Transactions {
		if meta.BlockTime == nil {
			continue
		}
		t := *meta.BlockTime
		if scanCtx.TimeRange.Earliest == nil || t.Before(*scanCtx.TimeRange.Earliest) {
			earliest := t
			scanCtx.TimeRange.Earliest = &earliest
		}
		if scanCtx.TimeRange.Latest == nil || t.After(*scanCtx.TimeRange.Latest) {
			latest := t
			scanCtx.TimeRange.Latest = &latest
		}
	}
}

// deriveBalances records the target's balances from the most recent record
// that mentions it. The batch arrives newest first, so the first matching
// record wins. Best effort only.
func (n *Normalizer) deriveBalances(scanCtx *model.ScanContext, batch *ledger.Batch) {
	if scanCtx.Kind != model.TargetWallet {
		return
	}
	for i := range batch.Transactions {
		raw := &batch.Transactions[i]
		if validateRecord(raw) != nil {
			continue
		}
		idx := -1
		for j, key := range raw.AccountKeys {
			if key == scanCtx.Target {
				idx = j
				break
			}
		}
		if idx < 0 {
			continue
		}

		scanCtx.Balances = append(scanCtx.Balances, model.AssetBalance{
			Amount:   raw.PostBalances[idx],
			Decimals: 9,
		})
		for _, b := range raw.PostTokenBalances {
			if b.Owner == scanCtx.Target {
				scanCtx.Balances = append(scanCtx.Balances, model.AssetBalance{
					Asset:    b.Mint,
					Amount:   b.Amount,
					Decimals: b.Decimals,
				})
			}
		}
		return
	}
}

// resolveLabels looks up known-entity labels for every address a detector
// might attribute activity to.
func (n *Normalizer) resolveLabels(scanCtx *model.ScanContext) {
	if n.labels == nil {
		return
	}
	seen := make(map[string]bool)
	var addresses []string
	add := func(addr string) {
		if addr == "" || seen[addr] {
			return
		}
		seen[addr] = true
		addresses = append(addresses, addr)
	}
	for _, addr := range scanCtx.Counterparties {
		add(addr)
	}
	for _, meta := range scanCtx.Transactions {
		add(meta.FeePayer)
	}
	for addr := range scanCtx.RentRefunds {
		add(addr)
	}

	scanCtx.Labels = n.labels.LookupMany(addresses)
	if scanCtx.Labels == nil {
		scanCtx.Labels = make(map[string]model.Label)
	}
}
