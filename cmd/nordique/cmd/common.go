package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/nordique-ai/nordique/internal/config"
	"github.com/nordique-ai/nordique/internal/logging"
	"github.com/nordique-ai/nordique/internal/session"
)

// loadConfig loads and validates configuration using the global viper
// instance, so CLI flag bindings take precedence.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// newLogger creates the logger for a command run.
func newLogger(cfg *config.Config) *logging.Logger {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.Format = cfg.Log.Format
	return logging.New(lc)
}

// settingsFromConfig maps analysis configuration to session settings.
func settingsFromConfig(cfg *config.Config) session.Settings {
	return session.Settings{
		Epsilon:             cfg.Analysis.Epsilon,
		SimilarityThreshold: cfg.Analysis.SimilarityThreshold,
		MinLength:           cfg.Analysis.MinLength,
	}
}

// readText reads input text from a file, or from stdin when path is "-".
func readText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// parseAgentArg splits a "name=file" argument.
func parseAgentArg(arg string) (name, file string, err error) {
	name, file, ok := strings.Cut(arg, "=")
	if !ok || name == "" || file == "" {
		return "", "", fmt.Errorf("invalid agent argument %q, expected name=file", arg)
	}
	return name, file, nil
}
