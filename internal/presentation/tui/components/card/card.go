// Package card renders small bordered information cards.
package card

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/myshelf/internal/presentation/tui/textutil"
)

// Props defines the properties for a card.
type Props struct {
	Title  string
	Lines  []string
	Width  int
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

// Render renders the card. Lines wider than the card are truncated.
func Render(p Props) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)

	inner := p.Width - style.GetHorizontalFrameSize()
	if p.Width > 0 {
		style = style.Width(p.Width - style.GetHorizontalBorderSize())
	}

	rows := make([]string, 0, len(p.Lines)+1)
	if p.Title != "" {
		title := p.Title
		if inner > 0 {
			title = textutil.Truncate(title, inner)
		}
		rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(title))
	}
	for _, line := range p.Lines {
		if inner > 0 {
			line = textutil.Truncate(line, inner)
		}
		rows = append(rows, line)
	}
	return style.Render(strings.Join(rows, "\n"))
}
