package heuristic

import (
	"fmt"

	"github.com/nao1215/solscan/internal/model"
)

// knownEntityDetector flags transfers involving publicly labeled entities.
// Exchange interactions are the most serious case because exchange deposits
// tie on-chain activity to KYC records.
type knownEntityDetector struct{}

func (d *knownEntityDetector) ID() string   { return "known_entity" }
func (d *knownEntityDetector) Name() string { return "Known Entity Interaction" }

func (d *knownEntityDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	var evidence []model.Evidence
	entities := 0
	exchange := false

	// Counterparties are sorted, which keeps evidence order stable.
	for _, addr := range scanCtx.Counterparties {
		label, ok := scanCtx.LabelFor(addr)
		if !ok {
			continue
		}

		interactions := 0
		var examples []string
		for _, tr := range scanCtx.Transfers {
			if tr.Sender != addr && tr.Receiver != addr {
				continue
			}
			interactions++
			if len(examples) < 3 && tr.TxRef != "" {
				examples = append(examples, tr.TxRef)
			}
		}
		if interactions == 0 {
			continue
		}

		entities++
		if label.Type == "exchange" {
			exchange = true
		}
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("%d transfer(s) with %s (%s)", interactions, label.Name, label.Type),
			Reference:   addr,
			Type:        model.EvidenceEntity,
			Data: model.EntityEvidence{
				Address:      addr,
				Name:         label.Name,
				Category:     label.Type,
				Interactions: interactions,
				Examples:     examples,
			},
		})
	}
	if entities == 0 {
		return nil, nil
	}

	severity := model.SeverityMedium
	if exchange || entities >= 3 {
		severity = model.SeverityHigh
	}
	reason := fmt.Sprintf("Transfers involve %d publicly labeled entities.", entities)
	if exchange {
		reason = fmt.Sprintf("Transfers involve %d publicly labeled entities, including at least one exchange.", entities)
	}
	return []model.Signal{newSignal(model.SignalKnownEntity, severity, reason, evidence)}, nil
}
