// Package export writes analysis runs to JSON and CSV files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/renameio/v2"

	"github.com/nordique-ai/nordique/internal/consensus"
	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/session"
)

// Report is the JSON export shape for one analysis run.
type Report struct {
	Timestamp time.Time            `json:"timestamp"`
	Settings  session.Settings     `json:"settings"`
	Responses []core.AgentResponse `json:"responses"`
	Synthesis consensus.Result     `json:"synthesis"`
}

// NewReport builds a report from a recorded run.
func NewReport(entry session.Entry) Report {
	return Report{
		Timestamp: entry.Timestamp,
		Settings:  entry.Settings,
		Responses: entry.Responses,
		Synthesis: entry.Result,
	}
}

// WriteJSON writes the report to path atomically.
func WriteJSON(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteCSV writes the per-agent score table to path atomically. One row per
// agent, lengths in runes.
func WriteCSV(path string, responses []core.AgentResponse) error {
	t, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer t.Cleanup() //nolint:errcheck

	w := csv.NewWriter(t)
	if err := w.Write([]string{"agent", "entropy_h", "coherence_c", "score_lmc", "length"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range responses {
		row := []string{
			r.Name,
			strconv.FormatFloat(r.H, 'f', 3, 64),
			strconv.FormatFloat(r.C, 'f', 3, 64),
			strconv.FormatFloat(r.Score, 'f', 3, 64),
			strconv.Itoa(utf8.RuneCountInString(r.Content)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
