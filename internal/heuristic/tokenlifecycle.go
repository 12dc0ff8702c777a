package heuristic

import (
	"fmt"
	"sort"

	"github.com/nao1215/solscan/internal/model"
)

// tokenLifecycleDetector flags reused rent-refund destinations from token
// account closures. Closing accounts into a single collection wallet
// reveals the wallet operating those accounts.
type tokenLifecycleDetector struct{}

func (d *tokenLifecycleDetector) ID() string   { return "token_lifecycle" }
func (d *tokenLifecycleDetector) Name() string { return "Token Account Lifecycle" }

func (d *tokenLifecycleDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	var reused []string
	severity := model.SeverityLow
	for addr, count := range scanCtx.RentRefunds {
		// Refunding rent to the scanned wallet itself reveals nothing new.
		if count <= 1 || addr == scanCtx.Target {
			continue
		}
		reused = append(reused, addr)
		if count > 3 {
			severity = model.SeverityMedium
		}
	}
	if len(reused) == 0 {
		return nil, nil
	}
	sort.Strings(reused)

	evidence := make([]model.Evidence, 0, len(reused))
	for _, addr := range reused {
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("%d token account closure(s) refunded rent to %s", scanCtx.RentRefunds[addr], addr),
			Reference:   addr,
			Type:        model.EvidenceRentRefund,
			Data:        model.RentRefundEvidence{Destination: addr, Count: scanCtx.RentRefunds[addr]},
		})
	}
	reason := fmt.Sprintf("%d rent-refund destination(s) recur across token account closures.", len(reused))
	return []model.Signal{newSignal(model.SignalRentRefundReuse, severity, reason, evidence)}, nil
}
