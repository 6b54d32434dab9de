// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Open
	Back
	NextSection
	PrevSection
	ShowEvent
	ShowHome
	Register
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	switch {
	case key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.Open):
		return Intent{Type: Open}
	case key.Matches(msg, keys.Back):
		return Intent{Type: Back}
	case key.Matches(msg, keys.Right) || msg.Type == tea.KeyTab:
		return Intent{Type: NextSection}
	case key.Matches(msg, keys.Left) || msg.Type == tea.KeyShiftTab:
		return Intent{Type: PrevSection}
	case key.Matches(msg, keys.Event):
		return Intent{Type: ShowEvent}
	case key.Matches(msg, keys.Home):
		return Intent{Type: ShowHome}
	case key.Matches(msg, keys.Register):
		return Intent{Type: Register}
	default:
		return Intent{Type: None}
	}
}
