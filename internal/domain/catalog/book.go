// Package catalog defines the shared book catalog models.
package catalog

import (
	"fmt"
	"strings"
)

// Book represents one catalog record.
type Book struct {
	ID       string
	Title    string
	Authors  []string
	Genre    string
	CoverURL string
	Year     string
}

// AuthorLine returns all authors joined for display.
func (b Book) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

// LeadAuthor returns the first author, or an empty string when none are known.
func (b Book) LeadAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}

func (b Book) clone() Book {
	b.Authors = append([]string(nil), b.Authors...)
	return b
}

// Snapshot is an immutable, ordered copy of the catalog as of one fetch.
type Snapshot struct {
	books []Book
	index map[string]int
}

// NewSnapshot builds a snapshot preserving the given order.
// It fails when two records share an id or a record has no id.
func NewSnapshot(books []Book) (*Snapshot, error) {
	s := &Snapshot{
		books: make([]Book, 0, len(books)),
		index: make(map[string]int, len(books)),
	}
	for _, b := range books {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			return nil, fmt.Errorf("book %q has no id", b.Title)
		}
		if _, dup := s.index[id]; dup {
			return nil, fmt.Errorf("duplicate book id %q", id)
		}
		b.ID = id
		s.index[id] = len(s.books)
		s.books = append(s.books, b.clone())
	}
	return s, nil
}

// Len returns the number of books in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.books)
}

// Books returns a copy of the books in snapshot order.
func (s *Snapshot) Books() []Book {
	if s == nil {
		return nil
	}
	out := make([]Book, len(s.books))
	for i, b := range s.books {
		out[i] = b.clone()
	}
	return out
}

// Book returns the record with the given id.
func (s *Snapshot) Book(id string) (Book, bool) {
	if s == nil {
		return Book{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Book{}, false
	}
	return s.books[i].clone(), true
}

// Filter returns the books matching keep, preserving snapshot order.
func (s *Snapshot) Filter(keep func(Book) bool) []Book {
	if s == nil {
		return nil
	}
	out := make([]Book, 0)
	for _, b := range s.books {
		if keep(b) {
			out = append(out, b.clone())
		}
	}
	return out
}
