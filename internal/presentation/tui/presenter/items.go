// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/event"
	"github.com/tesso57/myshelf/internal/presentation/tui/textutil"
)

// AuthorStyle selects how a book's authors are shown in a list row.
type AuthorStyle int

const (
	// AllAuthors joins every author with ", ".
	AllAuthors AuthorStyle = iota
	// LeadAuthor shows the first author only.
	LeadAuthor
)

// Item is a view model for a book row.
type Item struct {
	BookID     string
	TitleText  string
	AuthorText string
	GenreText  string
	Year       string
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// ID returns the book id handed to the detail view.
func (i *Item) ID() string { return i.BookID }

// Authors returns the author line for the row. It may be empty.
func (i *Item) Authors() string { return i.AuthorText }

// Description returns a formatted description for list display.
func (i *Item) Description() string {
	if i.GenreText != "" {
		return fmt.Sprintf("%s - %s", i.GenreText, i.AuthorText)
	}
	return i.AuthorText
}

// BuildBookListItems builds numbered list items for books in the given order.
func BuildBookListItems(books []catalog.Book, style AuthorStyle) []list.Item {
	items := make([]list.Item, len(books))
	for i, b := range books {
		authors := b.AuthorLine()
		if style == LeadAuthor {
			authors = b.LeadAuthor()
		}
		items[i] = &Item{
			BookID:     b.ID,
			TitleText:  textutil.Ranked(i+1, b.Title),
			AuthorText: authors,
			GenreText:  b.Genre,
			Year:       b.Year,
		}
	}
	return items
}

// ApplyBookList replaces the list items and keeps the cursor on the book it
// was on before, falling back to the same position clamped to the new length.
func ApplyBookList(model *list.Model, books []catalog.Book, style AuthorStyle) {
	selectedID := SelectedBookID(*model)
	index := model.Index()

	items := BuildBookListItems(books, style)
	model.SetItems(items)
	if len(items) == 0 {
		return
	}

	for i, it := range items {
		if selectedID != "" && it.(*Item).BookID == selectedID {
			model.Select(i)
			return
		}
	}
	model.Select(min(index, len(items)-1))
}

// SelectedBookID returns the id of the highlighted book, or an empty string.
func SelectedBookID(model list.Model) string {
	item, ok := model.SelectedItem().(*Item)
	if !ok || item == nil {
		return ""
	}
	return item.BookID
}

// BookDetail renders the body of the detail hand-off.
func BookDetail(b catalog.Book) string {
	lines := []string{
		"Author(s): " + textutil.OrPlaceholder(b.AuthorLine()),
		"Genre:     " + textutil.OrPlaceholder(b.Genre),
		"Year:      " + textutil.OrPlaceholder(b.Year),
	}
	if b.CoverURL != "" {
		lines = append(lines, "Cover:     "+b.CoverURL)
	}
	return strings.Join(lines, "\n")
}

// LoanLines renders the currently reading card body.
func LoanLines(loan catalog.Loan) []string {
	return []string{
		textutil.OrPlaceholder(loan.Book.AuthorLine()),
		fmt.Sprintf("Due in %d days", loan.DueInDays),
		"Overdue fine: " + loan.OverdueFine,
	}
}

// EventLines renders the event summary card body.
func EventLines(ev event.Event) []string {
	lines := []string{ev.DateLine()}
	if t := ev.TimeLine(); t != "" {
		lines = append(lines, t)
	}
	if ev.Venue != "" {
		lines = append(lines, ev.Venue)
	}
	if ev.City != "" {
		lines = append(lines, ev.City)
	}
	return lines
}

// EventBody renders the event page body.
func EventBody(ev event.Event, registered bool) string {
	var b strings.Builder
	if ev.Host != "" {
		host := ev.Host
		if ev.HostRole != "" {
			host += " (" + ev.HostRole + ")"
		}
		b.WriteString("Hosted by " + host + "\n\n")
	}
	b.WriteString("Overview\n")
	b.WriteString(ev.Overview)
	b.WriteString("\n\n")
	if registered {
		b.WriteString("[ Registered ]")
	} else {
		b.WriteString("[ Register ]")
	}
	return b.String()
}
