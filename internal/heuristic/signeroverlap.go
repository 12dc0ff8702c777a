package heuristic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nao1215/solscan/internal/model"
)

// signerOverlapDetector flags signer sets that co-sign many transactions.
// A recurring multi-signature group ties all of its transactions to one
// operational unit.
type signerOverlapDetector struct{}

func (d *signerOverlapDetector) ID() string   { return "signer_overlap" }
func (d *signerOverlapDetector) Name() string { return "Signer Set Recurrence" }

// signerSetThreshold is the minimum recurrence count for a signer set.
const signerSetThreshold = 3

func (d *signerOverlapDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	counts := make(map[string]int)
	members := make(map[string][]string)
	for _, meta := range scanCtx.Transactions {
		// A single signer is just the wallet itself; only groups link
		// otherwise independent parties.
		if len(meta.Signers) < 2 {
			continue
		}
		set := append([]string{}, meta.Signers...)
		sort.Strings(set)
		key := strings.Join(set, ",")
		counts[key]++
		members[key] = set
	}

	var keys []string
	severity := model.SeverityLow
	for key, count := range counts {
		if count < signerSetThreshold {
			continue
		}
		keys = append(keys, key)
		if scanCtx.TransactionCount > 0 && count*2 > scanCtx.TransactionCount {
			severity = model.SeverityMedium
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	evidence := make([]model.Evidence, 0, len(keys))
	for _, key := range keys {
		evidence = append(evidence, model.Evidence{
			Description: fmt.Sprintf("signer set of %d co-signed %d transactions", len(members[key]), counts[key]),
			Type:        model.EvidenceSignerSet,
			Data:        model.SignerSetEvidence{Signers: members[key], Count: counts[key]},
		})
	}
	reason := fmt.Sprintf("%d signer set(s) recur across transactions.", len(keys))
	return []model.Signal{newSignal(model.SignalSignerOverlap, severity, reason, evidence)}, nil
}
