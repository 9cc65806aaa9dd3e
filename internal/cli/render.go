package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card chrome follows the adaptive palette used across the command output.
// Status and detail text goes through the Theme so --no-color applies.
var (
	cardBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
	cardPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	cardMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cardBorder.GetForeground()).
		Padding(0, 2).
		Width(64)
}

// kvPair is a label/value row inside a card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines lays out kvPairs with aligned values.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s",
			cardMuted.Render(fmt.Sprintf("%-*s", width, p.key)),
			p.value)
	}
	return b.String()
}

// renderCard renders a titled bordered card around the body.
func renderCard(title, body string) string {
	heading := cardPrimary.Bold(true).Render(title)
	return cardStyle().Render(heading + "\n\n" + body)
}

// statusLabel renders pass/fail labels for doctor and run summaries.
func statusLabel(ok bool) string {
	if ok {
		return deps.Theme.SuccessStyle().Render("ok")
	}
	return deps.Theme.ErrorStyle().Render("FAIL")
}
