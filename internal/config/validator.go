package config

import (
	"fmt"

	"github.com/nordique-ai/nordique/internal/core"
)

// Validate checks configuration invariants. Epsilon must be strictly
// positive: the LMC score divides by H+epsilon and H can be exactly zero.
func Validate(cfg *Config) error {
	if cfg.Analysis.Epsilon <= 0 {
		return core.ErrValidation(core.CodeInvalidEpsilon,
			fmt.Sprintf("epsilon must be positive, got %g", cfg.Analysis.Epsilon))
	}
	if cfg.Analysis.SimilarityThreshold < 0 || cfg.Analysis.SimilarityThreshold > 1 {
		return core.ErrValidation(core.CodeInvalidThreshold,
			fmt.Sprintf("similarity threshold must be in [0,1], got %g", cfg.Analysis.SimilarityThreshold))
	}
	if cfg.Analysis.MinLength < 1 {
		return core.ErrValidation(core.CodeInvalidMinLength,
			fmt.Sprintf("min length must be at least 1, got %d", cfg.Analysis.MinLength))
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return core.ErrValidation(core.CodeInvalidConfig,
			fmt.Sprintf("unknown log level %q", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "", "auto", "text", "json":
	default:
		return core.ErrValidation(core.CodeInvalidConfig,
			fmt.Sprintf("unknown log format %q", cfg.Log.Format))
	}

	return nil
}
