package catalog

import "testing"

func TestNewSnapshotPreservesOrder(t *testing.T) {
	s, err := NewSnapshot([]Book{
		{ID: "3", Title: "C"},
		{ID: "1", Title: "A"},
		{ID: "2", Title: "B"},
	})
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	books := s.Books()
	if len(books) != 3 || books[0].ID != "3" || books[1].ID != "1" || books[2].ID != "2" {
		t.Fatalf("unexpected order: %#v", books)
	}
}

func TestNewSnapshotRejectsDuplicateIDs(t *testing.T) {
	if _, err := NewSnapshot([]Book{{ID: "1"}, {ID: "1"}}); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNewSnapshotRejectsEmptyID(t *testing.T) {
	if _, err := NewSnapshot([]Book{{ID: "  ", Title: "No id"}}); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	input := []Book{{ID: "1", Authors: []string{"Ann"}}}
	s, err := NewSnapshot(input)
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	input[0].Authors[0] = "Mutated"

	books := s.Books()
	books[0].Authors[0] = "Mutated again"

	got, ok := s.Book("1")
	if !ok {
		t.Fatal("book 1 should exist")
	}
	if got.Authors[0] != "Ann" {
		t.Fatalf("snapshot was mutated: %#v", got.Authors)
	}
}

func TestNilSnapshot(t *testing.T) {
	var s *Snapshot
	if s.Len() != 0 {
		t.Fatal("nil snapshot should be empty")
	}
	if s.Books() != nil {
		t.Fatal("nil snapshot should have no books")
	}
	if _, ok := s.Book("1"); ok {
		t.Fatal("nil snapshot should not find books")
	}
}

func TestAuthorHelpers(t *testing.T) {
	b := Book{Authors: []string{"Ann", "Bob"}}
	if b.AuthorLine() != "Ann, Bob" {
		t.Fatalf("AuthorLine = %q", b.AuthorLine())
	}
	if b.LeadAuthor() != "Ann" {
		t.Fatalf("LeadAuthor = %q", b.LeadAuthor())
	}
	empty := Book{}
	if empty.LeadAuthor() != "" || empty.AuthorLine() != "" {
		t.Fatal("empty authors should render empty strings")
	}
}
