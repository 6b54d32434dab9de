// Package section renders a titled list block on the home screen.
package section

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for a section.
type Props struct {
	Title   string
	View    string
	Loading bool
	Spinner string
	Empty   string
	Active  bool
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

// Render renders the section title followed by its list, a loading line or
// the empty placeholder.
func Render(p Props) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Muted)
	marker := "  "
	if p.Active {
		titleStyle = titleStyle.Foreground(p.Accent)
		marker = "> "
	}
	title := titleStyle.Render(marker + p.Title)

	placeholder := lipgloss.NewStyle().PaddingLeft(2).Foreground(p.Muted)
	var body string
	switch {
	case p.Loading:
		body = placeholder.Render(p.Spinner + " Loading...")
	case p.View == "":
		body = placeholder.Render(p.Empty)
	default:
		body = p.View
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}
