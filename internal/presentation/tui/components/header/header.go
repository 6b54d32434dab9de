// Package header provides the home screen header component.
package header

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Visible      bool
	FirstName    string
	Badge        string
	BadgeLoading bool
	Spinner      string
	Accent       lipgloss.Color
	BadgeColor   lipgloss.Color
}

// Render renders the header component. It renders nothing when no member is signed in.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	welcome := "Welcome"
	if name := strings.TrimSpace(p.FirstName); name != "" {
		welcome += ", " + name
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(welcome)

	badge := p.Badge
	if p.BadgeLoading {
		badge = strings.TrimSpace(p.Spinner + " Loading membership")
	}
	badgeLine := lipgloss.NewStyle().Foreground(p.BadgeColor).Render(badge)

	return title + "\n" + badgeLine
}
