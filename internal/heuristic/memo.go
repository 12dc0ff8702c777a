package heuristic

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/solscan/internal/model"
)

// memoPIIDetector scans memo texts for literal personal information.
// Memos are stored on-chain forever, so any PII in them is a permanent,
// public identity leak.
type memoPIIDetector struct{}

func (d *memoPIIDetector) ID() string   { return "memo_pii" }
func (d *memoPIIDetector) Name() string { return "Memo PII Scan" }

type piiPattern struct {
	name     string
	re       *regexp.Regexp
	severity model.Severity
}

// piiPatterns is checked in order per memo. Direct identifiers (email,
// phone, IP) rate HIGH; indirect ones (URLs, social handles) rate MEDIUM.
var piiPatterns = []piiPattern{
	{
		name:     "email",
		re:       regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		severity: model.SeverityHigh,
	},
	{
		name:     "phone",
		re:       regexp.MustCompile(`\+[0-9][0-9 .\-()]{7,}[0-9]`),
		severity: model.SeverityHigh,
	},
	{
		name:     "ip_address",
		re:       regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`),
		severity: model.SeverityHigh,
	},
	{
		name:     "url",
		re:       regexp.MustCompile(`https?://[^\s]+`),
		severity: model.SeverityMedium,
	},
	{
		name:     "social_handle",
		re:       regexp.MustCompile(`(?:^|\s)@[A-Za-z0-9_]{3,}`),
		severity: model.SeverityMedium,
	},
}

// excerptLimit bounds how much memo text is reproduced in the report.
const excerptLimit = 40

func (d *memoPIIDetector) Evaluate(scanCtx *model.ScanContext) ([]model.Signal, error) {
	var evidence []model.Evidence
	severity := model.SeverityMedium

	for _, meta := range scanCtx.Transactions {
		for _, memo := range meta.Memos {
			// Confusable unicode forms are folded before matching so that
			// full-width or decomposed text cannot hide a literal match.
			text := norm.NFKC.String(memo)
			matchedEmail := false
			for _, p := range piiPatterns {
				// An email already covers its embedded handle-looking part.
				if p.name == "social_handle" && matchedEmail {
					continue
				}
				match := p.re.FindString(text)
				if match == "" {
					continue
				}
				if p.name == "email" {
					matchedEmail = true
				}
				if p.severity == model.SeverityHigh {
					severity = model.SeverityHigh
				}
				evidence = append(evidence, model.Evidence{
					Description: fmt.Sprintf("memo contains a %s pattern", p.name),
					Reference:   meta.Signature,
					Type:        model.EvidenceMemo,
					Data:        model.MemoEvidence{Pattern: p.name, Excerpt: excerpt(match)},
				})
			}
		}
	}
	if len(evidence) == 0 {
		return nil, nil
	}

	reason := fmt.Sprintf("%d memo pattern match(es) expose personal information on-chain.", len(evidence))
	return []model.Signal{newSignal(model.SignalMemoPII, severity, reason, evidence)}, nil
}

func excerpt(s string) string {
	if len(s) <= excerptLimit {
		return s
	}
	return s[:excerptLimit] + "..."
}
