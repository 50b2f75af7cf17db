package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/lmc"
	"github.com/nordique-ai/nordique/internal/render"
)

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score a single text with the LMC metric",
	Long: `Score a single text: entropy H, coherence C, and the LMC score
C/(H+epsilon). The text comes from the argument, from --file, or from
stdin with --file=-.

Examples:
  nordique score "Le texte à évaluer directement en argument."
  nordique score --file reponse.txt
  cat reponse.txt | nordique score --file=-`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

var (
	scoreFile    string
	scoreEpsilon float64
	scoreJSON    bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "",
		"read the text from a file (- for stdin)")
	scoreCmd.Flags().Float64Var(&scoreEpsilon, "epsilon", 0,
		"override the epsilon regularizer (must be positive)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false,
		"emit JSON instead of formatted output")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var text string
	switch {
	case scoreFile != "":
		text, err = readText(scoreFile)
		if err != nil {
			return err
		}
	case len(args) == 1:
		text = args[0]
	default:
		return fmt.Errorf("no text given: pass it as an argument or via --file")
	}

	epsilon := cfg.Analysis.Epsilon
	if cmd.Flags().Changed("epsilon") {
		if scoreEpsilon <= 0 {
			return core.ErrValidation(core.CodeInvalidEpsilon,
				fmt.Sprintf("epsilon must be positive, got %g", scoreEpsilon))
		}
		epsilon = scoreEpsilon
	}

	scores := lmc.New(epsilon).Score(text)

	if scoreJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"H":      scores.H,
			"C":      scores.C,
			"score":  scores.Score,
			"length": utf8.RuneCountInString(text),
		})
	}

	fmt.Print(render.Scores([]core.AgentResponse{{
		Name:    "texte",
		Content: text,
		H:       scores.H,
		C:       scores.C,
		Score:   scores.Score,
	}}))
	return nil
}
