// Package listview provides list item delegates for the view layer.
package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/myshelf/internal/presentation/tui/metrics"
)

// BookItem interface for items that can be rendered by BookDelegate.
type BookItem interface {
	list.Item
	Title() string
	Authors() string
}

// BookDelegate renders a book as a title line followed by its author line.
type BookDelegate struct {
	Styles list.DefaultItemStyles
	Muted  lipgloss.Color
}

// NewBookDelegate creates a new BookDelegate.
func NewBookDelegate(muted lipgloss.Color) *BookDelegate {
	return &BookDelegate{
		Styles: withItemPadding(list.NewDefaultItemStyles()),
		Muted:  muted,
	}
}

// Height returns the height of the item.
func (d *BookDelegate) Height() int {
	return metrics.BookItemLines
}

// Spacing returns the spacing between items.
func (d *BookDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d *BookDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item. An empty author list still takes its line.
func (d *BookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(BookItem)
	if !ok {
		return
	}

	title, authors := bookStyles(d.Styles, m, index, d.Muted)
	renderBookLines(w, m, []string{i.Title(), i.Authors()}, []lipgloss.Style{title, authors})
}
