package model

// EvidenceType tags the structured payload attached to a piece of evidence.
// Each tag corresponds to exactly one payload type; see the *Evidence payload
// structs below for the documented field set per tag.
type EvidenceType string

const (
	// EvidenceFeePayer describes an external fee payer and how many
	// transactions it funded. Payload: FeePayerEvidence.
	EvidenceFeePayer EvidenceType = "fee_payer"

	// EvidenceEntity describes interaction with a labeled entity.
	// Payload: EntityEvidence.
	EvidenceEntity EvidenceType = "entity_interaction"

	// EvidenceSequence describes a recurring instruction-program sequence.
	// Payload: SequenceEvidence.
	EvidenceSequence EvidenceType = "instruction_sequence"

	// EvidenceProgramUsage describes repeated use of an uncommon program.
	// Payload: ProgramUsageEvidence.
	EvidenceProgramUsage EvidenceType = "program_usage"

	// EvidencePDA describes a reused program-derived address.
	// Payload: PDAEvidence.
	EvidencePDA EvidenceType = "pda_reuse"

	// EvidenceTiming describes transaction timing bursts.
	// Payload: TimingEvidence.
	EvidenceTiming EvidenceType = "timing_burst"

	// EvidenceAmount describes a repeated exact transfer amount.
	// Payload: AmountEvidence.
	EvidenceAmount EvidenceType = "amount_reuse"

	// EvidenceMemo describes a PII pattern match inside a memo.
	// Payload: MemoEvidence.
	EvidenceMemo EvidenceType = "memo_match"

	// EvidenceCounterparty describes a heavily reused counterparty address.
	// Payload: CounterpartyEvidence.
	EvidenceCounterparty EvidenceType = "counterparty_reuse"

	// EvidenceSignerSet describes a recurring signer set.
	// Payload: SignerSetEvidence.
	EvidenceSignerSet EvidenceType = "signer_set"

	// EvidenceRentRefund describes a reused rent-refund destination from
	// token account closures. Payload: RentRefundEvidence.
	EvidenceRentRefund EvidenceType = "rent_refund"
)

// EvidenceData is the marker interface implemented by all typed evidence
// payloads.
//
// Design decision: The source data for evidence is loosely typed key/value
// pairs. We model it as a closed set of payload structs behind a marker
// interface instead of an open map so that every evidence tag has a
// documented, compiler-checked field set.
type EvidenceData interface {
	evidenceData()
}

// FeePayerEvidence is the payload for EvidenceFeePayer.
type FeePayerEvidence struct {
	// Payer is the external fee payer address.
	Payer string `json:"payer"`

	// Transactions is the number of target transactions this payer funded.
	Transactions int `json:"transactions"`

	// SignerSets is the number of distinct signer sets this payer funded.
	// Only populated for program scans.
	SignerSets int `json:"signerSets,omitempty"`
}

// EntityEvidence is the payload for EvidenceEntity.
type EntityEvidence struct {
	// Address is the labeled counterparty address.
	Address string `json:"address"`

	// Name is the entity's display name.
	Name string `json:"name"`

	// Category is the entity category (exchange, bridge, protocol, ...).
	Category string `json:"category"`

	// Interactions is the number of transfers involving this entity.
	Interactions int `json:"interactions"`

	// Examples holds up to three example transaction references.
	Examples []string `json:"examples,omitempty"`
}

// SequenceEvidence is the payload for EvidenceSequence.
type SequenceEvidence struct {
	// Sequence is the instruction-program sequence key.
	Sequence string `json:"sequence"`

	// Count is the number of transactions sharing this sequence.
	Count int `json:"count"`

	// Share is the fraction of all transactions covered by this sequence.
	Share float64 `json:"share"`
}

// ProgramUsageEvidence is the payload for EvidenceProgramUsage.
type ProgramUsageEvidence struct {
	// Program is the uncommon program identifier.
	Program string `json:"program"`

	// Count is how many times the program was invoked.
	Count int `json:"count"`
}

// PDAEvidence is the payload for EvidencePDA.
type PDAEvidence struct {
	// Address is the reused program-derived address.
	Address string `json:"address"`

	// Count is how many transactions referenced it.
	Count int `json:"count"`
}

// TimingEvidence is the payload for EvidenceTiming.
type TimingEvidence struct {
	// BurstPairs is the number of consecutive transaction pairs closer
	// together than the burst window.
	BurstPairs int `json:"burstPairs"`

	// Pairs is the total number of consecutive transaction pairs.
	Pairs int `json:"pairs"`

	// Density is BurstPairs / Pairs.
	Density float64 `json:"density"`
}

// AmountEvidence is the payload for EvidenceAmount.
type AmountEvidence struct {
	// Amount is the repeated transfer amount in base units.
	Amount uint64 `json:"amount"`

	// Asset is the asset identifier; empty means the native asset.
	Asset string `json:"asset,omitempty"`

	// Count is how many transfers carried exactly this amount.
	Count int `json:"count"`
}

// MemoEvidence is the payload for EvidenceMemo.
type MemoEvidence struct {
	// Pattern names the matched PII pattern (email, phone, url, ...).
	Pattern string `json:"pattern"`

	// Excerpt is a truncated excerpt of the matching memo. The full memo
	// text is deliberately not reproduced in the report.
	Excerpt string `json:"excerpt,omitempty"`
}

// CounterpartyEvidence is the payload for EvidenceCounterparty.
type CounterpartyEvidence struct {
	// Address is the counterparty address.
	Address string `json:"address"`

	// Interactions is the number of transfers involving it.
	Interactions int `json:"interactions"`
}

// SignerSetEvidence is the payload for EvidenceSignerSet.
type SignerSetEvidence struct {
	// Signers is the recurring signer set, sorted.
	Signers []string `json:"signers"`

	// Count is the number of transactions signed by exactly this set.
	Count int `json:"count"`
}

// RentRefundEvidence is the payload for EvidenceRentRefund.
type RentRefundEvidence struct {
	// Destination is the reused rent-refund destination address.
	Destination string `json:"destination"`

	// Count is the number of token account closures refunding to it.
	Count int `json:"count"`
}

func (FeePayerEvidence) evidenceData()     {}
func (EntityEvidence) evidenceData()       {}
func (SequenceEvidence) evidenceData()     {}
func (ProgramUsageEvidence) evidenceData() {}
func (PDAEvidence) evidenceData()          {}
func (TimingEvidence) evidenceData()       {}
func (AmountEvidence) evidenceData()       {}
func (MemoEvidence) evidenceData()         {}
func (CounterpartyEvidence) evidenceData() {}
func (SignerSetEvidence) evidenceData()    {}
func (RentRefundEvidence) evidenceData()   {}

// Evidence is one supporting data item attached to a privacy signal.
type Evidence struct {
	// Description is the human-readable summary of this item.
	Description string `json:"description"`

	// Severity optionally overrides the per-item risk level.
	Severity *Severity `json:"severity,omitempty"`

	// Reference optionally points at a transaction signature or address.
	Reference string `json:"reference,omitempty"`

	// Type tags the structured payload in Data.
	Type EvidenceType `json:"type,omitempty"`

	// Data is the typed payload matching Type. Nil when the description
	// carries all the information.
	Data EvidenceData `json:"data,omitempty"`
}

// Signal is one detected privacy risk: what was found, how bad it is, why it
// matters, and what to do about it.
type Signal struct {
	// ID is the stable signal identifier. It maps to the signal catalog in
	// signalinfo.go and to the mitigation table in the risk package.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Severity is the risk level of this signal.
	Severity Severity `json:"severity"`

	// Category optionally groups related signals (linkability, identity, ...).
	Category string `json:"category,omitempty"`

	// Reason explains what was observed.
	Reason string `json:"reason"`

	// Impact explains the privacy implications.
	Impact string `json:"impact"`

	// Evidence lists the supporting items, in detection order.
	Evidence []Evidence `json:"evidence"`

	// Mitigation is the advice for addressing this signal.
	Mitigation string `json:"mitigation"`

	// Confidence, when present, is in [0, 1].
	Confidence *float64 `json:"confidence,omitempty"`
}

// Confidence returns a pointer to v clamped into [0, 1], suitable for
// assigning to Signal.Confidence.
func Confidence(v float64) *float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return &v
}
