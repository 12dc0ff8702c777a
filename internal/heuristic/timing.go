package heuristic

import (
	"fmt"
	"sort"
	"time"

	"github.com/nao1215/solscan/internal/model"
)

// timingDetector measures how tightly transactions cluster in time.
// Back-to-back submission correlates with automated tooling and makes
// timing analysis against off-chain events easy.
type timingDetector struct{}

func (d *timingDetector) ID() string   { return "timing" }
func (d *timingDetector) Name() string { return "Transaction Timing Analysis" }

// burstWindow is the gap below which two consecutive transactions count as
// part of the same burst.
const burstWindow = 60 * time.Second

// minTimestamps is the minimum sample size for a meaningful density.
const minTimestamps = 5

func (d *timingDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	var stamps []time.Time
	for _, meta := range scanCtx.Transactions {
		if meta.BlockTime != nil {
			stamps = append(stamps, *meta.BlockTime)
		}
	}
	if len(stamps) < minTimestamps {
		return nil, nil
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	pairs := len(stamps) - 1
	burstPairs := 0
	for i := 1; i < len(stamps); i++ {
		if stamps[i].Sub(stamps[i-1]) <= burstWindow {
			burstPairs++
		}
	}
	density := float64(burstPairs) / float64(pairs)

	var severity model.Severity
	switch {
	case density >= 0.8:
		severity = model.SeverityHigh
	case density >= 0.5:
		severity = model.SeverityMedium
	case density >= 0.3:
		severity = model.SeverityLow
	default:
		return nil, nil
	}

	evidence := []model.Evidence{{
		Description: fmt.Sprintf("%d of %d consecutive transaction pairs are within %s of each other",
			burstPairs, pairs, burstWindow),
		Type: model.EvidenceTiming,
		Data: model.TimingEvidence{BurstPairs: burstPairs, Pairs: pairs, Density: density},
	}}
	reason := fmt.Sprintf("Transactions cluster into bursts: %.0f%% of consecutive pairs land within %s.",
		density*100, burstWindow)
	signal := newSignal(model.SignalTimingBurst, severity, reason, evidence)
	signal.Confidence = model.Confidence(density)
	return []model.Signal{signal}, nil
}
