// Package risk reduces a signal list to an overall risk level and a
// deduplicated mitigation list.
//
// Both functions are pure: the overall level depends only on the severity
// multiset, and the mitigation list depends only on which signal ids are
// present and in what order they first appear.
package risk

import "github.com/nao1215/solscan/internal/model"

// Overall computes the aggregated risk level from the signal severity
// multiset. Signal identity and content do not affect the result.
func Overall(signals []model.Signal) model.Severity {
	high, medium, low := 0, 0, 0
	for _, s := range signals {
		switch s.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		case model.SeverityLow:
			low++
		}
	}

	switch {
	case high >= 2, high >= 1 && medium >= 2:
		return model.SeverityHigh
	case high >= 1, medium >= 2, medium >= 1 && low >= 2:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// Generic mitigation texts.
const (
	hygieneTip = "No specific risks detected. Maintain good privacy hygiene: separate wallets per activity, self-funded fees, and no personal data on-chain."

	compartmentTip = "Compartmentalize activity across wallets so that one identified wallet does not expose the rest."

	researchTip = "Privacy on public ledgers degrades over time as analysis improves; periodically re-scan and review what your activity reveals."
)

// mitigationTable maps signal ids to mitigation texts. A text listed for
// several ids is still emitted once; deduplication preserves the insertion
// order of the first trigger.
var mitigationTable = []struct {
	ids  []string
	text string
}{
	{
		ids:  []string{model.SignalFeePayerExternal, model.SignalFeePayerNeverSelf, model.SignalFeePayerMultiSigner},
		text: "Fund transaction fees from the wallet itself; fee payment relationships are public and cluster wallets.",
	},
	{
		ids:  []string{model.SignalKnownEntity},
		text: "Route interactions with exchanges and other identified services through intermediate wallets.",
	},
	{
		ids:  []string{model.SignalRepeatedSequence, model.SignalDistinctivePrograms},
		text: "Vary transaction construction and program mix so activity does not share one recognizable shape.",
	},
	{
		ids:  []string{model.SignalPDAReuse},
		text: "Close and re-derive protocol accounts between activity epochs where the protocol allows it.",
	},
	{
		ids:  []string{model.SignalTimingBurst},
		text: "Introduce randomized delays between related transactions instead of submitting them back-to-back.",
	},
	{
		ids:  []string{model.SignalAmountReuse},
		text: "Randomize transfer amounts; avoid exact repeats when moving funds between your own wallets.",
	},
	{
		ids:  []string{model.SignalMemoPII},
		text: "Never put personal information in memo fields; memos are public and permanent.",
	},
	{
		ids:  []string{model.SignalCounterpartyReuse},
		text: "Rotate addresses with frequent counterparties to avoid exposing a stable relationship graph.",
	},
	{
		ids:  []string{model.SignalSignerOverlap},
		text: "Keep multi-signature wallets separate from activity that does not need them.",
	},
	{
		ids:  []string{model.SignalRentRefundReuse},
		text: "Refund rent from closed token accounts to fresh addresses rather than one collection wallet.",
	},
}

// Mitigations derives the deduplicated mitigation list for a signal list.
//
// An empty signal list yields a single generic hygiene message. Otherwise
// the list opens with a generic compartmentalization tip, contains every
// table entry whose triggering signal ids are present in first-trigger
// order, and closes with a generic research tip.
func Mitigations(signals []model.Signal) []string {
	if len(signals) == 0 {
		return []string{hygieneTip}
	}

	textFor := make(map[string]string)
	for _, entry := range mitigationTable {
		for _, id := range entry.ids {
			textFor[id] = entry.text
		}
	}

	out := []string{compartmentTip}
	seen := map[string]bool{compartmentTip: true}
	for _, s := range signals {
		text, ok := textFor[s.ID]
		if !ok || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return append(out, researchTip)
}
