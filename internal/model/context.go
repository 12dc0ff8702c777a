package model

import "time"

// TargetKind identifies what kind of ledger object a scan targets.
type TargetKind string

const (
	// TargetWallet scans the activity of a wallet address.
	TargetWallet TargetKind = "wallet"

	// TargetTransaction scans a single transaction.
	TargetTransaction TargetKind = "transaction"

	// TargetProgram scans the activity around a program.
	TargetProgram TargetKind = "program"
)

// InstructionCategory classifies a normalized instruction by the kind of
// program it targets.
type InstructionCategory string

const (
	// CategoryTransfer is a native asset transfer (system program).
	CategoryTransfer InstructionCategory = "transfer"

	// CategoryTokenOperation is a fungible token operation.
	CategoryTokenOperation InstructionCategory = "token_operation"

	// CategoryStake is a staking operation.
	CategoryStake InstructionCategory = "stake"

	// CategoryVote is a validator vote.
	CategoryVote InstructionCategory = "vote"

	// CategorySwap is an interaction with a known or suspected DEX program.
	CategorySwap InstructionCategory = "swap"

	// CategoryProgramInteraction is any other program invocation.
	CategoryProgramInteraction InstructionCategory = "program_interaction"
)

// Transfer is one reconstructed asset movement. Immutable once produced.
type Transfer struct {
	// Sender is the address whose balance decreased.
	Sender string `json:"sender"`

	// Receiver is the address whose balance increased.
	Receiver string `json:"receiver"`

	// Amount is the transferred amount in base units.
	Amount uint64 `json:"amount"`

	// Asset identifies the token mint; empty means the native asset.
	Asset string `json:"asset,omitempty"`

	// TxRef is the originating transaction signature.
	TxRef string `json:"txRef"`

	// Timestamp is the transaction block time, nil when unavailable.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// InstructionPayload carries optional structured details for a normalized
// instruction.
type InstructionPayload struct {
	// ProgramName is the well-known name of the target program, if any.
	ProgramName string `json:"programName,omitempty"`

	// Accounts lists the account addresses the instruction touched.
	Accounts []string `json:"accounts,omitempty"`
}

// NormalizedInstruction is one categorized instruction from a transaction.
type NormalizedInstruction struct {
	// ProgramID is the invoked program identifier.
	ProgramID string `json:"programId"`

	// Category is the instruction classification.
	Category InstructionCategory `json:"category"`

	// TxRef is the originating transaction signature.
	TxRef string `json:"txRef"`

	// Timestamp is the transaction block time, nil when unavailable.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// Payload carries optional structured details.
	Payload *InstructionPayload `json:"payload,omitempty"`
}

// Label describes a publicly documented entity behind an address.
type Label struct {
	// Address is the labeled address.
	Address string `json:"address"`

	// Name is the entity's display name.
	Name string `json:"name"`

	// Type is the entity category: "exchange", "bridge", "protocol",
	// "validator", or "other".
	Type string `json:"type"`

	// Description optionally adds context.
	Description string `json:"description,omitempty"`
}

// AssetBalance is one held-asset balance observed for the target.
type AssetBalance struct {
	// Asset identifies the token mint; empty means the native asset.
	Asset string `json:"asset,omitempty"`

	// Amount is the balance in base units.
	Amount uint64 `json:"amount"`

	// Decimals is the token's decimal count; 9 for the native asset.
	Decimals uint8 `json:"decimals"`
}

// TimeRange is the observed activity window. Both ends are nil when no
// timestamped transaction exists.
type TimeRange struct {
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

// TransactionMeta is the per-transaction metadata detectors rely on beyond
// transfers and instructions.
type TransactionMeta struct {
	// Signature is the transaction signature.
	Signature string `json:"signature"`

	// FeePayer is the account that paid the transaction fee.
	FeePayer string `json:"feePayer,omitempty"`

	// Signers lists the transaction's signer addresses, in key order.
	Signers []string `json:"signers,omitempty"`

	// Programs lists the invoked program identifiers, in instruction order.
	Programs []string `json:"programs,omitempty"`

	// SequenceKey is the instruction-program sequence fingerprint key.
	SequenceKey string `json:"sequenceKey,omitempty"`

	// Memos holds memo texts attached to the transaction.
	Memos []string `json:"memos,omitempty"`

	// BlockTime is the block timestamp, nil when unavailable.
	BlockTime *time.Time `json:"blockTime,omitempty"`
}

// ScanContext is the canonical, normalized view of a target's on-chain
// activity. It is built once per scan by the normalizer and read-only
// thereafter; detectors must not mutate it.
type ScanContext struct {
	// Target is the scanned address or transaction signature.
	Target string

	// Kind is the target kind.
	Kind TargetKind

	// Transfers is the ordered sequence of reconstructed transfers.
	Transfers []Transfer

	// Instructions is the sequence of normalized instructions.
	Instructions []NormalizedInstruction

	// Counterparties lists distinct addresses appearing as the other party
	// in any transfer relative to the target, sorted.
	Counterparties []string

	// Labels maps addresses to known-entity labels.
	Labels map[string]Label

	// Balances lists the target's held-asset balances, best effort.
	Balances []AssetBalance

	// TimeRange is the observed activity window.
	TimeRange TimeRange

	// TransactionCount is the number of transactions that survived
	// normalization.
	TransactionCount int

	// Transactions holds per-transaction metadata, in batch order.
	Transactions []TransactionMeta

	// ProgramCounts maps program identifiers to invocation counts.
	ProgramCounts map[string]int

	// PDACounts maps program-derived addresses to the number of
	// transactions referencing them.
	PDACounts map[string]int

	// RentRefunds maps rent-refund destinations from token account
	// closures to their occurrence counts.
	RentRefunds map[string]int

	// Warnings records non-fatal normalization and collection issues, such
	// as transactions skipped for structural defects.
	Warnings []string
}

// LabelFor returns the label for an address and whether one exists.
func (c *ScanContext) LabelFor(address string) (Label, bool) {
	l, ok := c.Labels[address]
	return l, ok
}
