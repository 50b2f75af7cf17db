// Package render formats scores and analysis results for the terminal.
package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nordique-ai/nordique/internal/consensus"
	"github.com/nordique-ai/nordique/internal/core"
)

// DisableColors forces plain output regardless of terminal detection.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Color palette
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorError     = lipgloss.Color("#EF4444") // Red
	colorTextMuted = lipgloss.Color("#9CA3AF") // Muted gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	agentStyle = lipgloss.NewStyle().
			Bold(true)
)

// confidenceBadge colors the confidence value by band.
func confidenceBadge(confidence float64) string {
	label := fmt.Sprintf("%.0f%%", confidence*100)
	var color lipgloss.Color
	switch {
	case confidence > 0.7:
		color = colorSuccess
	case confidence > 0.4:
		color = colorWarning
	default:
		color = colorError
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(label)
}

// Scores renders the per-agent score table.
func Scores(responses []core.AgentResponse) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Scores LMC"))
	b.WriteString("\n\n")

	nameWidth := len("agent")
	for _, r := range responses {
		if w := utf8.RuneCountInString(r.Name); w > nameWidth {
			nameWidth = w
		}
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s  %8s  %8s  %8s  %8s",
		nameWidth, "agent", "H", "C", "score", "length")))
	b.WriteString("\n")
	for _, r := range responses {
		b.WriteString(fmt.Sprintf("%-*s  %8.3f  %8.3f  %8.3f  %8d\n",
			nameWidth, r.Name, r.H, r.C, r.Score, utf8.RuneCountInString(r.Content)))
	}
	return b.String()
}

// Result renders a full analysis result: consensus, divergences, emergent
// insights, and the category map.
func Result(result consensus.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Synthèse"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("confiance"))
	b.WriteString(" ")
	b.WriteString(confidenceBadge(result.Consensus.Confidence))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Consensus"))
	b.WriteString("\n")
	if len(result.Consensus.Concepts) == 0 {
		b.WriteString(mutedStyle.Render("  (aucun concept partagé)"))
		b.WriteString("\n")
	} else {
		b.WriteString("  " + strings.Join(result.Consensus.Concepts, ", "))
		b.WriteString("\n")
	}
	for _, claim := range result.Consensus.Claims {
		b.WriteString(fmt.Sprintf("  • %s %s\n",
			claim.Claim,
			mutedStyle.Render(fmt.Sprintf("(%d voix, %.0f%%)",
				claim.Support, claim.Confidence*100))))
	}

	if len(result.Divergences) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Divergences"))
		b.WriteString("\n")
		for _, d := range result.Divergences {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				agentStyle.Render(d.Agent),
				strings.Join(d.Concepts, ", "),
				mutedStyle.Render(fmt.Sprintf("(%.2f)", d.Score))))
		}
	}

	if len(result.EmergentInsights) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Insights émergents"))
		b.WriteString("\n")
		for _, ins := range result.EmergentInsights {
			b.WriteString(fmt.Sprintf("  %s (%s) ~ %s (%s) %s\n",
				ins.Concept1, ins.Agent1,
				ins.Concept2, ins.Agent2,
				mutedStyle.Render(fmt.Sprintf("sim %.2f", ins.Similarity))))
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Catégories"))
	b.WriteString("\n")
	names := make([]string, 0, len(result.Insights))
	for name := range result.Insights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		concepts := result.Insights[name]
		if len(concepts) == 0 {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", name, mutedStyle.Render("(vide)")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-10s %s\n", name, strings.Join(concepts, ", ")))
	}

	return b.String()
}
