package listview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type mockBookItem struct {
	title   string
	authors string
}

func (m mockBookItem) Title() string       { return m.title }
func (m mockBookItem) Authors() string     { return m.authors }
func (m mockBookItem) Description() string { return "" }
func (m mockBookItem) FilterValue() string { return m.title }

func TestNewBookDelegate(t *testing.T) {
	d := NewBookDelegate(lipgloss.Color("244"))
	if d == nil {
		t.Fatal("NewBookDelegate returned nil")
	}
	if d.Height() != 2 {
		t.Errorf("Expected Height 2, got %d", d.Height())
	}
	if d.Spacing() != 0 {
		t.Errorf("Expected Spacing 0, got %d", d.Spacing())
	}
	if cmd := d.Update(nil, nil); cmd != nil {
		t.Error("Update should return nil")
	}
}

func TestBookDelegate_Render(t *testing.T) {
	d := NewBookDelegate(lipgloss.Color("244"))

	tests := []struct {
		name     string
		item     list.Item
		mdlIndex int
		contains []string
	}{
		{
			name:     "Normal Item",
			item:     mockBookItem{title: "Dune", authors: "Frank Herbert"},
			mdlIndex: 1,
			contains: []string{"Dune", "Frank Herbert"},
		},
		{
			name:     "Selected Item",
			item:     mockBookItem{title: "Emma", authors: "Jane Austen"},
			mdlIndex: 0,
			contains: []string{"Emma", "Jane Austen"},
		},
		{
			name:     "No Authors",
			item:     mockBookItem{title: "Beowulf"},
			mdlIndex: 0,
			contains: []string{"Beowulf"},
		},
		{
			name:     "Invalid Item",
			item:     nil,
			mdlIndex: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := list.New([]list.Item{mockBookItem{}, mockBookItem{}}, d, 40, 10)
			l.Select(tc.mdlIndex)

			d.Render(buf, l, 0, tc.item)

			if len(tc.contains) == 0 {
				if buf.Len() > 0 {
					t.Errorf("Expected empty output, got %q", buf.String())
				}
				return
			}
			for _, want := range tc.contains {
				if !bytes.Contains(buf.Bytes(), []byte(want)) {
					t.Errorf("Expected output to contain %q, got %q", want, buf.String())
				}
			}
			if got := strings.Count(buf.String(), "\n"); got != 1 {
				t.Errorf("Expected two lines, got %d newlines", got)
			}
		})
	}
}

func TestBookDelegate_RenderTruncates(t *testing.T) {
	d := NewBookDelegate(lipgloss.Color("244"))
	buf := &bytes.Buffer{}
	l := list.New([]list.Item{}, d, 12, 10)

	d.Render(buf, l, 1, mockBookItem{title: "A Very Long Book Title Indeed", authors: "Someone"})
	if !strings.Contains(buf.String(), "...") {
		t.Errorf("Expected truncated title, got %q", buf.String())
	}
}
