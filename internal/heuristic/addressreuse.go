package heuristic

import (
	"fmt"

	"github.com/nao1215/solscan/internal/model"
)

// addressReuseDetector flags counterparties involved in many transfers.
// A stable relationship graph around a wallet is one of the easiest
// clustering inputs.
type addressReuseDetector struct{}

func (d *addressReuseDetector) ID() string   { return "address_reuse" }
func (d *addressReuseDetector) Name() string { return "Counterparty Reuse" }

// counterpartyReuseThreshold is the minimum transfer count with one
// counterparty before it matters.
const counterpartyReuseThreshold = 3

func (d *addressReuseDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	if len(scanCtx.Transfers) == 0 {
		return nil, nil
	}

	counts := make(map[string]int)
	for _, tr := range scanCtx.Transfers {
		switch scanCtx.Target {
		case tr.Sender:
			counts[tr.Receiver]++
		case tr.Receiver:
			counts[tr.Sender]++
		}
	}

	var evidence []model.Evidence
	severity := model.SeverityLow
	// Counterparties are sorted, which keeps evidence order stable.
	for _, addr := range scanCtx.Counterparties {
		count := counts[addr]
		if count < counterpartyReuseThreshold {
			continue
		}
		if count >= 5 || count*2 > len(scanCtx.Transfers) {
			severity = model.SeverityMedium
		}
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("%d transfer(s) with %s", count, addr),
			Reference:   addr,
			Type:        model.EvidenceCounterparty,
			Data:        model.CounterpartyEvidence{Address: addr, Interactions: count},
		})
	}
	if len(evidence) == 0 {
		return nil, nil
	}

	reason := fmt.Sprintf("%d counterparty address(es) recur across transfers, exposing a stable relationship graph.", len(evidence))
	return []model.Signal{newSignal(model.SignalCounterpartyReuse, severity, reason, evidence)}, nil
}
