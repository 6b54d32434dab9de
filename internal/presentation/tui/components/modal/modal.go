// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Detail shows the book detail hand-off.
	Detail
	// Help shows the help dialog.
	Help
	// Quit asks for confirmation before exiting.
	Quit
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Title   string
	Body    string
	Width   int
	Height  int
	Accent  lipgloss.Color
}

// Render renders the modal component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	borderColor := lipgloss.Color("63")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	body := p.Body
	if p.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(p.Title)
		body = title + "\n\n" + body
	}

	switch p.Kind {
	case Detail:
		borderColor = p.Accent
		if w := p.Width * 2 / 3; w > 0 {
			box = box.Width(w)
		}
	case Quit:
		borderColor = lipgloss.Color("196")
	}

	content := box.BorderForeground(borderColor).Render(body)
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, content)
}
