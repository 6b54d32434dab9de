// Package sidebar provides the sidebar component.
package sidebar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the sidebar component.
type Props struct {
	View   string
	Width  int
	Height int
	Title  string
	Accent lipgloss.Color
	Muted  lipgloss.Color

	// Sections lists the home sections below the card; Focused indexes the
	// one that receives list keys.
	Sections []string
	Focused  int
}

// Render renders the sidebar component.
func Render(p Props) string {
	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color("63"))

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingBottom(1).
		Foreground(p.Accent)

	parts := []string{titleStyle.Render(p.Title), p.View}
	if index := renderSections(p); index != "" {
		parts = append(parts, index)
	}
	return sidebarStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderSections(p Props) string {
	if len(p.Sections) == 0 {
		return ""
	}
	focused := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	other := lipgloss.NewStyle().Foreground(p.Muted)

	lines := make([]string, len(p.Sections))
	for i, name := range p.Sections {
		if i == p.Focused {
			lines[i] = focused.Render("• " + name)
			continue
		}
		lines[i] = other.Render("  " + name)
	}
	return lipgloss.NewStyle().PaddingTop(1).PaddingLeft(2).Render(strings.Join(lines, "\n"))
}
