package normalize

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/nao1215/solscan/internal/labels"
	"github.com/nao1215/solscan/internal/ledger"
	"github.com/nao1215/solscan/internal/model"
)

func newTestNormalizer() *Normalizer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(labels.NewStaticResolver(nil), logger)
}

func testAddresses(t *testing.T, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, solana.NewWallet().PublicKey().String())
	}
	return out
}

func timePtr(t time.Time) *time.Time { return &t }

// TestNormalizeNativeTransfers tests balance-delta transfer reconstruction
// with the first-match sender heuristic.
func TestNormalizeNativeTransfers(t *testing.T) {
	t.Parallel()

	addrs := testAddresses(t, 4)
	blockTime := timePtr(time.Unix(1700000000, 0).UTC())

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  addrs,
				NumSigners:   1,
				BlockTime:    blockTime,
				PreBalances:  []uint64{100, 50, 10, 0},
				PostBalances: []uint64{40, 80, 35, 0},
				Instructions: []ledger.RawInstruction{
					{ProgramID: systemProgram, Accounts: []int{0, 1}},
				},
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(addrs[0], model.TargetWallet, batch)

	if len(scanCtx.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(scanCtx.Transfers), scanCtx.Transfers)
	}
	// Account 0 is the first decreased balance; it is paired with every
	// increased account.
	for i, want := range []struct {
		receiver string
		amount   uint64
	}{
		{addrs[1], 30},
		{addrs[2], 25},
	} {
		got := scanCtx.Transfers[i]
		if got.Sender != addrs[0] || got.Receiver != want.receiver || got.Amount != want.amount {
			t.Errorf("transfer %d: got %+v, want sender=%s receiver=%s amount=%d",
				i, got, addrs[0], want.receiver, want.amount)
		}
		if got.Asset != "" {
			t.Errorf("transfer %d: native transfer should have empty asset, got %q", i, got.Asset)
		}
	}

	wantCounterparties := 2
	if len(scanCtx.Counterparties) != wantCounterparties {
		t.Errorf("expected %d counterparties, got %v", wantCounterparties, scanCtx.Counterparties)
	}
	if scanCtx.TransactionCount != 1 {
		t.Errorf("expected transaction count 1, got %d", scanCtx.TransactionCount)
	}
	if scanCtx.TimeRange.Earliest == nil || !scanCtx.TimeRange.Earliest.Equal(*blockTime) {
		t.Errorf("unexpected time range: %+v", scanCtx.TimeRange)
	}
}

// TestNormalizeTokenTransfers tests the per-mint delta table.
func TestNormalizeTokenTransfers(t *testing.T) {
	t.Parallel()

	addrs := testAddresses(t, 4)
	mint := solana.NewWallet().PublicKey().String()

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  addrs,
				NumSigners:   1,
				PreBalances:  []uint64{10, 10, 10, 10},
				PostBalances: []uint64{9, 10, 10, 10},
				PreTokenBalances: []ledger.TokenBalance{
					{AccountIndex: 1, Mint: mint, Owner: addrs[0], Amount: 500},
					{AccountIndex: 2, Mint: mint, Owner: addrs[3], Amount: 0},
				},
				PostTokenBalances: []ledger.TokenBalance{
					{AccountIndex: 1, Mint: mint, Owner: addrs[0], Amount: 200},
					{AccountIndex: 2, Mint: mint, Owner: addrs[3], Amount: 300},
				},
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(addrs[0], model.TargetWallet, batch)

	var tokenTransfers []model.Transfer
	for _, tr := range scanCtx.Transfers {
		if tr.Asset == mint {
			tokenTransfers = append(tokenTransfers, tr)
		}
	}
	if len(tokenTransfers) != 1 {
		t.Fatalf("expected 1 token transfer, got %+v", scanCtx.Transfers)
	}
	got := tokenTransfers[0]
	if got.Sender != addrs[0] || got.Receiver != addrs[3] || got.Amount != 300 {
		t.Errorf("unexpected token transfer: %+v", got)
	}
}

// TestNormalizeSkipsMalformedRecords tests that a record with missing
// balance arrays is dropped with a warning while the rest of the batch is
// still processed.
func TestNormalizeSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	addrs := testAddresses(t, 2)
	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:   "broken",
				AccountKeys: addrs,
				NumSigners:  1,
				// balance arrays missing
			},
			{
				Signature:    "ok",
				AccountKeys:  addrs,
				NumSigners:   1,
				PreBalances:  []uint64{100, 0},
				PostBalances: []uint64{60, 40},
			},
			{
				Signature: "no-keys",
				// no account keys at all
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(addrs[0], model.TargetWallet, batch)

	if scanCtx.TransactionCount != 1 {
		t.Errorf("expected 1 surviving transaction, got %d", scanCtx.TransactionCount)
	}
	if len(scanCtx.Transfers) != 1 || scanCtx.Transfers[0].TxRef != "ok" {
		t.Errorf("malformed records must contribute no transfers: %+v", scanCtx.Transfers)
	}
	if len(scanCtx.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", scanCtx.Warnings)
	}
}

// TestNormalizeEmptyBatch tests the zero-data context shape.
func TestNormalizeEmptyBatch(t *testing.T) {
	t.Parallel()

	target := solana.NewWallet().PublicKey().String()
	scanCtx := newTestNormalizer().Normalize(target, model.TargetWallet, &ledger.Batch{})

	if scanCtx.TransactionCount != 0 || len(scanCtx.Transfers) != 0 || len(scanCtx.Instructions) != 0 {
		t.Errorf("expected empty context, got %+v", scanCtx)
	}
	if scanCtx.TimeRange.Earliest != nil || scanCtx.TimeRange.Latest != nil {
		t.Errorf("time range must be nil without timestamps: %+v", scanCtx.TimeRange)
	}
	if scanCtx.Labels == nil || scanCtx.ProgramCounts == nil {
		t.Error("maps must be initialized even for an empty batch")
	}
}

// TestNormalizeTransactionMeta tests fee payer, signer, sequence-key, and
// memo extraction.
func TestNormalizeTransactionMeta(t *testing.T) {
	t.Parallel()

	addrs := testAddresses(t, 3)
	keys := append(append([]string{}, addrs...), systemProgram, memoProgram)

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  keys,
				NumSigners:   2,
				PreBalances:  []uint64{10, 10, 10, 1, 1},
				PostBalances: []uint64{9, 10, 11, 1, 1},
				Instructions: []ledger.RawInstruction{
					{ProgramID: systemProgram, Accounts: []int{0, 2}},
					{ProgramID: memoProgram, Accounts: []int{0}, Data: []byte("order #42")},
				},
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(addrs[0], model.TargetWallet, batch)

	if len(scanCtx.Transactions) != 1 {
		t.Fatalf("expected 1 transaction meta, got %d", len(scanCtx.Transactions))
	}
	meta := scanCtx.Transactions[0]
	if meta.FeePayer != addrs[0] {
		t.Errorf("fee payer should be the first account key, got %q", meta.FeePayer)
	}
	if len(meta.Signers) != 2 || meta.Signers[1] != addrs[1] {
		t.Errorf("unexpected signers: %v", meta.Signers)
	}
	if meta.SequenceKey != systemProgram+">"+memoProgram {
		t.Errorf("unexpected sequence key: %q", meta.SequenceKey)
	}
	if len(meta.Memos) != 1 || meta.Memos[0] != "order #42" {
		t.Errorf("unexpected memos: %v", meta.Memos)
	}
	if scanCtx.ProgramCounts[systemProgram] != 1 || scanCtx.ProgramCounts[memoProgram] != 1 {
		t.Errorf("unexpected program counts: %v", scanCtx.ProgramCounts)
	}
}

// TestNormalizeRentRefunds tests CloseAccount destination tracking.
func TestNormalizeRentRefunds(t *testing.T) {
	t.Parallel()

	addrs := testAddresses(t, 3)
	keys := append(append([]string{}, addrs...), tokenProgram)

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  keys,
				NumSigners:   1,
				PreBalances:  []uint64{10, 5, 0, 1},
				PostBalances: []uint64{9, 0, 6, 1},
				Instructions: []ledger.RawInstruction{
					{
						ProgramID: tokenProgram,
						Accounts:  []int{1, 2, 0},
						Data:      []byte{closeAccountInstruction},
					},
				},
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(addrs[0], model.TargetWallet, batch)

	if scanCtx.RentRefunds[addrs[2]] != 1 {
		t.Errorf("expected rent refund to %s, got %v", addrs[2], scanCtx.RentRefunds)
	}
}

// TestNormalizePDACounts tests off-curve address counting.
func TestNormalizePDACounts(t *testing.T) {
	t.Parallel()

	program := solana.MustPublicKeyFromBase58(tokenProgram)
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("vault")}, program)
	if err != nil {
		t.Fatalf("derive program address: %v", err)
	}

	wallet := solana.NewWallet().PublicKey().String()
	keys := []string{wallet, pda.String(), tokenProgram}

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  keys,
				NumSigners:   1,
				PreBalances:  []uint64{10, 0, 0},
				PostBalances: []uint64{9, 0, 0},
				Instructions: []ledger.RawInstruction{
					{ProgramID: tokenProgram, Accounts: []int{0, 1}, Data: []byte{3}},
				},
			},
			{
				Signature:    "sig2",
				AccountKeys:  keys,
				NumSigners:   1,
				PreBalances:  []uint64{9, 0, 0},
				PostBalances: []uint64{8, 0, 0},
				Instructions: []ledger.RawInstruction{
					{ProgramID: tokenProgram, Accounts: []int{0, 1}, Data: []byte{3}},
				},
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(wallet, model.TargetWallet, batch)

	if scanCtx.PDACounts[pda.String()] != 2 {
		t.Errorf("expected PDA counted once per transaction, got %v", scanCtx.PDACounts)
	}
	if _, ok := scanCtx.PDACounts[wallet]; ok {
		t.Error("on-curve wallet must not be counted as a PDA")
	}
}

// TestNormalizeResolvesLabels tests known-entity lookup for counterparties.
func TestNormalizeResolvesLabels(t *testing.T) {
	t.Parallel()

	const exchange = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	target := solana.NewWallet().PublicKey().String()

	batch := &ledger.Batch{
		Transactions: []ledger.RawTransaction{
			{
				Signature:    "sig1",
				AccountKeys:  []string{target, exchange},
				NumSigners:   1,
				PreBalances:  []uint64{100, 0},
				PostBalances: []uint64{50, 50},
			},
		},
	}

	scanCtx := newTestNormalizer().Normalize(target, model.TargetWallet, batch)

	label, ok := scanCtx.LabelFor(exchange)
	if !ok || label.Name != "Binance" {
		t.Errorf("expected exchange label to resolve, got %+v (labels: %v)", label, scanCtx.Labels)
	}
}

// TestCategorize tests the program classification table and heuristics.
func TestCategorize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		programID string
		want      model.InstructionCategory
	}{
		{systemProgram, model.CategoryTransfer},
		{tokenProgram, model.CategoryTokenOperation},
		{token2022Program, model.CategoryTokenOperation},
		{ataProgram, model.CategoryTokenOperation},
		{stakeProgram, model.CategoryStake},
		{voteProgram, model.CategoryVote},
		{jupiterProgram, model.CategorySwap},
		{raydiumProgram, model.CategorySwap},
		{orcaProgram, model.CategorySwap},
		{memoProgram, model.CategoryProgramInteraction},
		{computeBudgetProgram, model.CategoryProgramInteraction},
		{"SwapXyz1111111111111111111111111111111111", model.CategorySwap},
		{"SomeRandomProgram111111111111111111111111", model.CategoryProgramInteraction},
	}

	for _, tc := range testCases {
		got, _ := categorize(tc.programID)
		if got != tc.want {
			t.Errorf("categorize(%s) = %s, want %s", tc.programID, got, tc.want)
		}
	}
}
