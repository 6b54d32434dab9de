package presenter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/event"
)

func testBooks() []catalog.Book {
	return []catalog.Book{
		{ID: "1", Title: "The Hobbit", Authors: []string{"J. R. R. Tolkien"}, Genre: "Fantasy", Year: "1937"},
		{ID: "2", Title: "Good Omens", Authors: []string{"Terry Pratchett", "Neil Gaiman"}, Genre: "Fantasy"},
		{ID: "3", Title: "Anonymous", Authors: nil, Genre: "Mystery"},
	}
}

func TestBuildBookListItems(t *testing.T) {
	items := BuildBookListItems(testBooks(), AllAuthors)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	i1 := items[0].(*Item)
	if i1.TitleText != "1. The Hobbit" {
		t.Errorf("Expected numbered title, got %q", i1.TitleText)
	}
	if i1.ID() != "1" {
		t.Errorf("Expected id 1, got %q", i1.ID())
	}

	i2 := items[1].(*Item)
	if i2.Authors() != "Terry Pratchett, Neil Gaiman" {
		t.Errorf("Expected all authors, got %q", i2.Authors())
	}

	i3 := items[2].(*Item)
	if i3.Authors() != "" {
		t.Errorf("Expected empty author line, got %q", i3.Authors())
	}
	if i3.Description() != "Mystery - " {
		t.Errorf("Unexpected description %q", i3.Description())
	}
}

func TestBuildBookListItems_LeadAuthor(t *testing.T) {
	items := BuildBookListItems(testBooks(), LeadAuthor)
	if got := items[1].(*Item).Authors(); got != "Terry Pratchett" {
		t.Errorf("Expected lead author only, got %q", got)
	}
	if got := items[2].(*Item).Authors(); got != "" {
		t.Errorf("Expected empty lead author, got %q", got)
	}
}

func TestItemMethods(t *testing.T) {
	i := Item{BookID: "7", TitleText: "Title", AuthorText: "Author", GenreText: "Genre"}
	if i.FilterValue() != "Title" {
		t.Errorf("FilterValue mismatch")
	}
	if i.Title() != "Title" {
		t.Errorf("Title mismatch")
	}
	if i.Description() != "Genre - Author" {
		t.Errorf("Description mismatch: %q", i.Description())
	}
	i2 := Item{AuthorText: "Author"}
	if i2.Description() != "Author" {
		t.Errorf("Description mismatch for empty genre")
	}
}

func TestApplyBookList_KeepsSelectionByID(t *testing.T) {
	model := list.New(nil, list.NewDefaultDelegate(), 40, 20)
	ApplyBookList(&model, testBooks(), AllAuthors)
	model.Select(1)
	if SelectedBookID(model) != "2" {
		t.Fatalf("Expected book 2 selected, got %q", SelectedBookID(model))
	}

	// The same book moves to the front after a refresh.
	books := testBooks()
	reordered := []catalog.Book{books[1], books[0], books[2]}
	ApplyBookList(&model, reordered, AllAuthors)
	if SelectedBookID(model) != "2" {
		t.Errorf("Expected selection to follow book 2, got %q", SelectedBookID(model))
	}
	if model.Index() != 0 {
		t.Errorf("Expected cursor at 0, got %d", model.Index())
	}
}

func TestApplyBookList_ClampsWhenSelectedBookIsGone(t *testing.T) {
	model := list.New(nil, list.NewDefaultDelegate(), 40, 20)
	ApplyBookList(&model, testBooks(), AllAuthors)
	model.Select(2)

	ApplyBookList(&model, testBooks()[:1], AllAuthors)
	if model.Index() != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", model.Index())
	}

	ApplyBookList(&model, nil, AllAuthors)
	if SelectedBookID(model) != "" {
		t.Errorf("Expected no selection for empty list")
	}
}

func TestBookDetail(t *testing.T) {
	got := BookDetail(catalog.Book{ID: "1", Title: "The Hobbit", CoverURL: "https://img/1.jpg"})
	if !strings.Contains(got, "Author(s): -") {
		t.Errorf("Expected dash for missing authors, got %q", got)
	}
	if !strings.Contains(got, "https://img/1.jpg") {
		t.Errorf("Expected cover url, got %q", got)
	}
}

func TestLoanLines(t *testing.T) {
	lines := LoanLines(catalog.CurrentlyReadingPlaceholder)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Stephen King", "Due in 10 days", "Overdue fine: $0"} {
		if !strings.Contains(joined, want) {
			t.Errorf("LoanLines missing %q: %q", want, joined)
		}
	}
}

func TestEventBody(t *testing.T) {
	ev := event.Default()
	got := EventBody(ev, false)
	if !strings.Contains(got, "Hosted by J. K. Rowling (Author)") {
		t.Errorf("Missing host line: %q", got)
	}
	if !strings.Contains(got, "[ Register ]") {
		t.Errorf("Missing register action: %q", got)
	}
	if !strings.Contains(EventBody(ev, true), "[ Registered ]") {
		t.Error("Expected registered marker")
	}

	lines := EventLines(ev)
	if lines[0] != "19 January 2024" {
		t.Errorf("Unexpected date line %q", lines[0])
	}
}
