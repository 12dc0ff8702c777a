package config

import "github.com/nao1215/solscan/internal/model"

// LabelConfig describes one custom address label in the .solscan file.
// Custom labels supplement the bundled entity set and override it when
// the same address appears in both.
type LabelConfig struct {
	// Name is the entity's display name (e.g., "My Exchange Deposit").
	Name string `yaml:"name"`

	// Type is the entity category: "exchange", "bridge", "protocol",
	// "validator", or "other". Defaults to "other" when empty.
	Type string `yaml:"type,omitempty"`

	// Description optionally adds context shown in reports.
	Description string `yaml:"description,omitempty"`
}

// TargetConfig holds per-target overrides for a single scan target.
type TargetConfig struct {
	// MaxHistory overrides the global transaction history limit for this
	// target. If zero, the global MaxHistory is used.
	MaxHistory int `yaml:"maxHistory,omitempty"`
}

// File represents the structure of the .solscan configuration file.
type File struct {
	// Labels maps addresses to their custom label configurations.
	// Keys are base58 Solana addresses.
	Labels map[string]LabelConfig `yaml:"labels,omitempty"`

	// Targets maps addresses or signatures to per-target overrides.
	Targets map[string]TargetConfig `yaml:"targets,omitempty"`
}

// MaxHistoryFor returns the history limit for a target, falling back to
// the given default when no override is configured.
func (cf *File) MaxHistoryFor(target string, fallback int) int {
	if cf == nil {
		return fallback
	}
	if tc, ok := cf.Targets[target]; ok && tc.MaxHistory > 0 {
		return tc.MaxHistory
	}
	return fallback
}

// ModelLabels converts the custom labels into model.Label values,
// ready to be passed to the label resolver.
func (cf *File) ModelLabels() []model.Label {
	if cf == nil || len(cf.Labels) == 0 {
		return nil
	}

	labels := make([]model.Label, 0, len(cf.Labels))
	for address, lc := range cf.Labels {
		labelType := lc.Type
		if labelType == "" {
			labelType = "other"
		}
		labels = append(labels, model.Label{
			Address:     address,
			Name:        lc.Name,
			Type:        labelType,
			Description: lc.Description,
		})
	}
	return labels
}
