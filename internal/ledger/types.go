package ledger

import "time"

// TokenBalance is one token account balance snapshot from transaction
// metadata, keyed by the account's index in the transaction's account list.
type TokenBalance struct {
	// AccountIndex is the index into the transaction's account keys.
	AccountIndex int

	// Mint is the token mint address.
	Mint string

	// Owner is the wallet owning the token account, empty when the RPC
	// node did not report it.
	Owner string

	// Amount is the raw token amount in base units.
	Amount uint64

	// Decimals is the token's decimal count.
	Decimals uint8
}

// RawInstruction is one top-level instruction as recorded on the ledger.
type RawInstruction struct {
	// ProgramID is the invoked program's address.
	ProgramID string

	// Accounts holds indexes into the transaction's account keys.
	Accounts []int

	// Data is the raw instruction data.
	Data []byte
}

// RawTransaction is one per-transaction ledger record: account balances
// before and after, parsed instructions, and token balance deltas. This is
// the normalizer's input format.
type RawTransaction struct {
	// Signature is the transaction signature.
	Signature string

	// Slot is the slot the transaction landed in.
	Slot uint64

	// BlockTime is the block timestamp, nil when the node did not report one.
	BlockTime *time.Time

	// AccountKeys lists the transaction's account addresses in declaration
	// order. The first NumSigners entries signed the transaction, and the
	// first entry paid the fee.
	AccountKeys []string

	// NumSigners is the number of required signatures.
	NumSigners int

	// PreBalances and PostBalances hold native balances per account index,
	// aligned with AccountKeys.
	PreBalances  []uint64
	PostBalances []uint64

	// PreTokenBalances and PostTokenBalances hold token balance snapshots.
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance

	// Instructions holds the transaction's top-level instructions.
	Instructions []RawInstruction

	// Failed is true when the transaction errored on-chain.
	Failed bool
}

// Batch is one best-effort collection result. A batch may be partial: any
// record that could not be fetched is simply absent, with a corresponding
// entry in Warnings.
type Batch struct {
	// Transactions holds the fetched records, newest first.
	Transactions []RawTransaction

	// Warnings records transient collection failures. A non-empty warning
	// list with an empty transaction list usually means collection failed
	// outright rather than that the target has no activity.
	Warnings []string
}
