package config

import (
	"fmt"
	"sort"

	"github.com/nordique-ai/nordique/internal/core"
)

// Preset bundles analysis tuning for a usage profile.
type Preset struct {
	Epsilon             float64 `json:"epsilon" yaml:"epsilon"`
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
	MinLength           int     `json:"min_length" yaml:"min_length"`
}

// presets are the built-in analysis profiles.
var presets = map[string]Preset{
	"standard":   {Epsilon: 0.1, SimilarityThreshold: 0.45, MinLength: 100},
	"academique": {Epsilon: 0.05, SimilarityThreshold: 0.5, MinLength: 200},
	"creatif":    {Epsilon: 0.2, SimilarityThreshold: 0.4, MinLength: 100},
	"strict":     {Epsilon: 0.01, SimilarityThreshold: 0.6, MinLength: 150},
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPreset looks up a preset by name.
func GetPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// ApplyPreset overwrites the analysis settings of cfg with the named preset.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := presets[name]
	if !ok {
		return core.ErrValidation(core.CodeUnknownPreset,
			fmt.Sprintf("unknown preset %q (available: %v)", name, PresetNames()))
	}
	cfg.Analysis.Epsilon = p.Epsilon
	cfg.Analysis.SimilarityThreshold = p.SimilarityThreshold
	cfg.Analysis.MinLength = p.MinLength
	return nil
}
