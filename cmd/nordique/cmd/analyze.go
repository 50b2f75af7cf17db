package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nordique-ai/nordique/internal/adapters/history"
	"github.com/nordique-ai/nordique/internal/config"
	"github.com/nordique-ai/nordique/internal/export"
	"github.com/nordique-ai/nordique/internal/render"
	"github.com/nordique-ai/nordique/internal/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze name=file [name=file ...]",
	Short: "Run a consensus analysis across agent responses",
	Long: `Analyze two or more agent responses: per-agent LMC scores, shared
concepts and claims, divergences, emergent insights, and a thematic
category map.

Each argument names an agent and the file holding its response.

Examples:
  nordique analyze gpt=gpt.txt claude=claude.txt
  nordique analyze --preset academique a=a.txt b=b.txt c=c.txt
  nordique analyze --export-json rapport.json a=a.txt b=b.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAnalyze,
}

var (
	analyzePreset     string
	analyzeEpsilon    float64
	analyzeThreshold  float64
	analyzeMinLength  int
	analyzeJSON       bool
	analyzeExportJSON string
	analyzeExportCSV  string
	analyzeSave       bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzePreset, "preset", "",
		"analysis preset (standard, academique, creatif, strict)")
	analyzeCmd.Flags().Float64Var(&analyzeEpsilon, "epsilon", 0,
		"override the epsilon regularizer (must be positive)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0,
		"override the claim similarity threshold (0..1)")
	analyzeCmd.Flags().IntVar(&analyzeMinLength, "min-length", 0,
		"override the minimum response length in runes")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false,
		"emit the full result as JSON instead of formatted output")
	analyzeCmd.Flags().StringVar(&analyzeExportJSON, "export-json", "",
		"write the full report to a JSON file")
	analyzeCmd.Flags().StringVar(&analyzeExportCSV, "export-csv", "",
		"write the per-agent score table to a CSV file")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false,
		"record the run in the history database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if analyzePreset != "" {
		if err := config.ApplyPreset(cfg, analyzePreset); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Analysis.Epsilon = analyzeEpsilon
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Analysis.SimilarityThreshold = analyzeThreshold
	}
	if cmd.Flags().Changed("min-length") {
		cfg.Analysis.MinLength = analyzeMinLength
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	sess := session.New(settingsFromConfig(cfg))
	for _, arg := range args {
		name, file, err := parseAgentArg(arg)
		if err != nil {
			return err
		}
		content, err := readText(file)
		if err != nil {
			return err
		}
		resp, err := sess.SetResponse(name, name, content)
		if err != nil {
			return err
		}
		logger.WithAgent(name).Debug("response admitted",
			"H", resp.H, "C", resp.C, "score", resp.Score)
	}

	entry, err := sess.Analyze()
	if err != nil {
		return err
	}
	logger.WithAnalysis(entry.ID).Info("analysis complete",
		"agents", len(entry.Responses),
		"confidence", entry.Result.Consensus.Confidence)

	if analyzeExportJSON != "" {
		if err := export.WriteJSON(analyzeExportJSON, export.NewReport(entry)); err != nil {
			return err
		}
		logger.Info("report written", "path", analyzeExportJSON)
	}
	if analyzeExportCSV != "" {
		if err := export.WriteCSV(analyzeExportCSV, entry.Responses); err != nil {
			return err
		}
		logger.Info("score table written", "path", analyzeExportCSV)
	}

	if analyzeSave {
		store, err := history.Open(cfg.State.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(context.Background(), entry); err != nil {
			return err
		}
		logger.Info("analysis saved", "analysis_id", entry.ID, "path", cfg.State.Path)
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	}

	fmt.Print(render.Scores(entry.Responses))
	fmt.Println()
	fmt.Print(render.Result(entry.Result))
	return nil
}
