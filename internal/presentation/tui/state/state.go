// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/myshelf/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	HomeView Session = iota
	DetailView
	EventView
	QuitView
)

// Section identifies the focused list on the home screen.
type Section int

const (
	RecommendedSection Section = iota
	NewReleasesSection
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	UpPage   key.Binding
	DownPage key.Binding
	Open     key.Binding
	Back     key.Binding
	Quit     key.Binding
	Event    key.Binding
	Home     key.Binding
	Register key.Binding
	Help     key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Back, k.Open}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.UpPage, k.DownPage, k.Open, k.Back},
		{k.Event, k.Home, k.Register},
		{k.Quit, k.Help},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Up)...),
			key.WithHelp(cfg.Up, "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Down)...),
			key.WithHelp(cfg.Down, "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Left)...),
			key.WithHelp(cfg.Left, "prev section"),
		),
		Right: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Right)...),
			key.WithHelp(cfg.Right, "next section"),
		),
		UpPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.UpPage)...),
			key.WithHelp(cfg.UpPage, "pgup"),
		),
		DownPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.DownPage)...),
			key.WithHelp(cfg.DownPage, "pgdn"),
		),
		Open: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Open)...),
			key.WithHelp(cfg.Open, "open"),
		),
		Back: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Back)...),
			key.WithHelp(cfg.Back, "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Quit)...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		Event: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Event)...),
			key.WithHelp(cfg.Event, "event"),
		),
		Home: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Home)...),
			key.WithHelp(cfg.Home, "home"),
		),
		Register: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Register)...),
			key.WithHelp(cfg.Register, "register"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
