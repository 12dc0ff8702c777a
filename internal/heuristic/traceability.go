package heuristic

import (
	"fmt"
	"sort"

	"github.com/nao1215/solscan/internal/model"
)

// traceabilityDetector looks for repeated exact transfer amounts. Identical
// amounts make flows trivially traceable across hops even through
// intermediate wallets.
type traceabilityDetector struct{}

func (d *traceabilityDetector) ID() string   { return "traceability" }
func (d *traceabilityDetector) Name() string { return "Balance Traceability" }

// amountReuseThreshold is the minimum occurrence count for a repeated
// amount to matter.
const amountReuseThreshold = 3

type amountKey struct {
	amount uint64
	asset  string
}

func (d *traceabilityDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	counts := make(map[amountKey]int)
	for _, tr := range scanCtx.Transfers {
		if tr.Amount == 0 {
			continue
		}
		counts[amountKey{amount: tr.Amount, asset: tr.Asset}]++
	}

	var repeated []amountKey
	severity := model.SeverityLow
	for key, count := range counts {
		if count < amountReuseThreshold {
			continue
		}
		repeated = append(repeated, key)
		if count >= 5 {
			severity = model.SeverityMedium
		}
	}
	if len(repeated) == 0 {
		return nil, nil
	}
	sort.Slice(repeated, func(i, j int) bool {
		if repeated[i].amount != repeated[j].amount {
			return repeated[i].amount < repeated[j].amount
		}
		return repeated[i].asset < repeated[j].asset
	})

	evidence := make([]model.Evidence, 0, len(repeated))
	for _, key := range repeated {
		asset := key.asset
		if asset == "" {
			asset = "native"
		}
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("amount %d (%s) transferred %d times", key.amount, asset, counts[key]),
			Type:        model.EvidenceAmount,
			Data:        model.AmountEvidence{Amount: key.amount, Asset: key.asset, Count: counts[key]},
		})
	}
	reason := fmt.Sprintf("%d exact amount(s) recur across transfers.", len(repeated))
	return []model.Signal{newSignal(model.SignalAmountReuse, severity, reason, evidence)}, nil
}
