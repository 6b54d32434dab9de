package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// FooterText returns the footer content for the current session.
func FooterText(session Session, loading bool, status, helpText string) string {
	status = strings.TrimSpace(status)
	if loading || status == "" || session == QuitView {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}

// FooterHelpText renders the short help split over two lines: navigation
// first, then actions.
func FooterHelpText(h help.Model, keys KeyMap) string {
	nav := []key.Binding{keys.Up, keys.Down, keys.Left, keys.Right, keys.Open, keys.Back}
	actions := []key.Binding{keys.Event, keys.Home, keys.Register, keys.Quit, keys.Help}
	return h.ShortHelpView(nav) + "\n" + h.ShortHelpView(actions)
}
