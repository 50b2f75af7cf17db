package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nordique-ai/nordique/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in analysis presets",
	RunE:  runPresets,
}

var presetsJSON bool

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false,
		"emit JSON instead of formatted output")
}

func runPresets(_ *cobra.Command, _ []string) error {
	names := config.PresetNames()

	if presetsJSON {
		out := make(map[string]config.Preset, len(names))
		for _, name := range names {
			p, _ := config.GetPreset(name)
			out[name] = p
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%-12s  %8s  %10s  %10s\n", "preset", "epsilon", "threshold", "min-length")
	for _, name := range names {
		p, _ := config.GetPreset(name)
		fmt.Printf("%-12s  %8g  %10g  %10d\n",
			name, p.Epsilon, p.SimilarityThreshold, p.MinLength)
	}
	return nil
}
