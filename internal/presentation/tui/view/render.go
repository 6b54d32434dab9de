// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/tesso57/myshelf/internal/presentation/tui/components/header"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/myshelf/internal/presentation/tui/components/main"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/modal"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/sidebar"
)

// Props aggregates properties for all UI components.
type Props struct {
	Sidebar sidebar.Props
	Header  header.Props
	Main    mainview.Props
	Modal   modal.Props
	Footer  string
}

// Render renders the complete UI view based on the provided props. A modal
// replaces the whole screen; a zero-width sidebar is left out so a compact
// window shows only the feed.
func Render(p Props) string {
	if p.Modal.Visible {
		return modal.Render(p.Modal)
	}

	p.Main.Header = header.Render(p.Header)
	props := layout.Props{
		Main:   mainview.Render(p.Main),
		Footer: p.Footer,
	}
	if p.Sidebar.Width > 0 {
		props.Sidebar = sidebar.Render(p.Sidebar)
	}
	return layout.Render(props)
}
