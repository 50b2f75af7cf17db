package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nordique-ai/nordique/internal/adapters/history"
	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show one recorded analysis run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false,
		"emit JSON instead of formatted output")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20,
		"maximum number of runs to list (0 for all)")
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.State.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("no recorded analyses")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %d agents  confiance %.0f%%\n",
			e.ID,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			len(e.Responses),
			e.Result.Consensus.Confidence*100)
	}
	return nil
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.State.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(context.Background(), args[0])
	if err != nil {
		if core.IsCategory(err, core.ErrCatNotFound) {
			return fmt.Errorf("no recorded analysis with id %s", args[0])
		}
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	}

	fmt.Printf("analyse %s (%s)\n\n", entry.ID, entry.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Print(render.Scores(entry.Responses))
	fmt.Println()
	fmt.Print(render.Result(entry.Result))
	return nil
}
