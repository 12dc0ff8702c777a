package model

// Signal category constants. Categories group signals by the kind of
// exposure they describe.
const (
	// CategoryLinkability covers signals that link activity across
	// transactions, wallets, or operators.
	CategoryLinkability = "linkability"

	// CategoryIdentity covers signals that tie activity to a real-world or
	// platform identity.
	CategoryIdentity = "identity"

	// CategoryBehavioral covers signals derived from behavioral patterns
	// such as timing and amount reuse.
	CategoryBehavioral = "behavioral"
)

// Stable signal identifiers. Detectors emit these, the mitigation table in
// the risk package keys off them, and they are part of the report contract.
const (
	SignalFeePayerExternal    = "fee_payer_external"
	SignalFeePayerNeverSelf   = "fee_payer_never_self"
	SignalFeePayerMultiSigner = "fee_payer_multi_signer"
	SignalKnownEntity         = "known_entity_interaction"
	SignalRepeatedSequence    = "instruction_sequence_repeated"
	SignalDistinctivePrograms = "distinctive_program_usage"
	SignalPDAReuse            = "pda_reuse"
	SignalTimingBurst         = "timing_burst"
	SignalAmountReuse         = "amount_reuse"
	SignalMemoPII             = "memo_pii"
	SignalCounterpartyReuse   = "counterparty_reuse"
	SignalSignerOverlap       = "signer_overlap"
	SignalRentRefundReuse     = "rent_refund_reuse"
)

// SignalInfo contains the static metadata for a signal type: display name,
// category, impact description, and mitigation advice. Severity is decided
// by the detector at evaluation time and is therefore not part of this
// table.
type SignalInfo struct {
	Name       string
	Category   string
	Impact     string
	Mitigation string
}

// signalInfoMapping maps signal identifiers to their metadata.
// This centralized mapping ensures consistent wording across detectors.
//
// Design decision: We use a map rather than embedding the texts in each
// detector because:
//  1. It provides a single source of truth for report wording
//  2. It keeps detector code focused on the heuristic itself
//  3. It makes it easy to review all user-facing text in one place
var signalInfoMapping = map[string]SignalInfo{
	SignalFeePayerExternal: {
		Name:       "External Fee Payer",
		Category:   CategoryLinkability,
		Impact:     "A third party paid transaction fees for this wallet, linking the two on-chain. Fee payment relationships are fully public and commonly used to cluster wallets.",
		Mitigation: "Fund fees from the wallet itself, or use a dedicated funding wallet that is never linked to identified activity.",
	},
	SignalFeePayerNeverSelf: {
		Name:       "Never Pays Own Fees",
		Category:   CategoryLinkability,
		Impact:     "Every transaction fee was paid by an external wallet. This strongly suggests a managed or custodial relationship and makes the operator trivially identifiable once any fee payer is identified.",
		Mitigation: "Self-fund transaction fees, or rotate among many unlinked fee payers if delegation is unavoidable.",
	},
	SignalFeePayerMultiSigner: {
		Name:       "Multi-Signer Fee Operator",
		Category:   CategoryLinkability,
		Impact:     "One fee payer funded transactions for multiple distinct signer sets, indicating a shared operator behind apparently independent wallets.",
		Mitigation: "Use separate fee funding per signer set so unrelated activity cannot be clustered through a common payer.",
	},
	SignalKnownEntity: {
		Name:       "Known Entity Interaction",
		Category:   CategoryIdentity,
		Impact:     "Transfers involve publicly labeled entities. Exchange deposits in particular tie on-chain activity to KYC identity records.",
		Mitigation: "Use intermediate wallets between identified services and private activity, and avoid depositing directly from a wallet you want to keep unlinked.",
	},
	SignalRepeatedSequence: {
		Name:       "Repeated Instruction Sequence",
		Category:   CategoryBehavioral,
		Impact:     "The same instruction-program sequence recurs across many transactions, forming a behavioral fingerprint that can identify this wallet's activity elsewhere.",
		Mitigation: "Vary transaction construction, batching, and tooling so activity does not share a single recognizable shape.",
	},
	SignalDistinctivePrograms: {
		Name:       "Distinctive Program Usage",
		Category:   CategoryBehavioral,
		Impact:     "Repeated use of uncommon programs narrows the anonymity set: few wallets share this program mix.",
		Mitigation: "Access niche programs from separate wallets rather than mixing them with your main activity.",
	},
	SignalPDAReuse: {
		Name:       "Program-Derived Address Reuse",
		Category:   CategoryLinkability,
		Impact:     "The same program-derived accounts recur across transactions, linking them to one user position or identity within a protocol.",
		Mitigation: "Close and re-derive protocol accounts between activity epochs where the protocol allows it.",
	},
	SignalTimingBurst: {
		Name:       "Transaction Timing Bursts",
		Category:   CategoryBehavioral,
		Impact:     "Transactions cluster into tight bursts. Burst timing correlates strongly with automated tooling and with off-chain events, aiding timing analysis.",
		Mitigation: "Introduce randomized delays between related transactions instead of submitting them back-to-back.",
	},
	SignalAmountReuse: {
		Name:       "Repeated Exact Amounts",
		Category:   CategoryBehavioral,
		Impact:     "Identical transfer amounts recur, making flows easy to trace across hops even through intermediate wallets.",
		Mitigation: "Randomize transfer amounts; avoid round numbers and exact repeats when moving funds between your own wallets.",
	},
	SignalMemoPII: {
		Name:       "Personal Information in Memos",
		Category:   CategoryIdentity,
		Impact:     "Memo text containing emails, phone numbers, or handles is stored on-chain forever and directly identifies participants.",
		Mitigation: "Never put personal information in memo fields; memos are public and permanent.",
	},
	SignalCounterpartyReuse: {
		Name:       "Counterparty Address Reuse",
		Category:   CategoryLinkability,
		Impact:     "Repeated transfers with the same counterparties expose a stable relationship graph around this wallet.",
		Mitigation: "Rotate receiving addresses with frequent counterparties and spread recurring flows across wallets.",
	},
	SignalSignerOverlap: {
		Name:       "Recurring Signer Set",
		Category:   CategoryLinkability,
		Impact:     "The same set of signers co-signs many transactions, tying all of them to one operational group.",
		Mitigation: "Limit multi-signature wallets to the activity that needs them and keep other activity in independent wallets.",
	},
	SignalRentRefundReuse: {
		Name:       "Rent Refund Destination Reuse",
		Category:   CategoryLinkability,
		Impact:     "Token account closures repeatedly refund rent to the same wallet, revealing the wallet that operates these accounts.",
		Mitigation: "Refund rent from closed token accounts to fresh addresses rather than a single collection wallet.",
	},
}

// GetSignalInfo returns the metadata for a signal identifier.
// Unknown identifiers get a generic placeholder so that externally composed
// signals still render in reports.
func GetSignalInfo(id string) SignalInfo {
	if info, ok := signalInfoMapping[id]; ok {
		return info
	}
	return SignalInfo{
		Name:       id,
		Impact:     "Unrecognized signal type. Review manually.",
		Mitigation: "Investigate the signal and assess risk.",
	}
}
