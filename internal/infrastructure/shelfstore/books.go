package shelfstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
)

// Books reads and writes the books collection.
type Books struct {
	Store docstore.Store
}

// ListBooks returns every book in store order.
func (b Books) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	docs, err := b.Store.List(ctx, docstore.Books)
	if err != nil {
		return nil, err
	}
	books := make([]catalog.Book, 0, len(docs))
	for _, doc := range docs {
		books = append(books, decodeBook(doc))
	}
	return books, nil
}

// Book reads one book by id.
func (b Books) Book(ctx context.Context, id string) (catalog.Book, error) {
	doc, err := b.Store.Get(ctx, docstore.Books, id)
	if err != nil {
		return catalog.Book{}, err
	}
	return decodeBook(doc), nil
}

// PutBook stores a book, replacing any previous record with the same id.
func (b Books) PutBook(ctx context.Context, book catalog.Book) error {
	id := strings.TrimSpace(book.ID)
	if id == "" {
		return fmt.Errorf("book id is required")
	}
	_, err := b.Store.Put(ctx, docstore.Books, id, encodeBook(book))
	return err
}

func decodeBook(doc docstore.Document) catalog.Book {
	return catalog.Book{
		ID:       doc.ID,
		Title:    stringField(doc.Data, "title"),
		Authors:  stringsField(doc.Data, "authors"),
		Genre:    rawStringField(doc.Data, "genre"),
		CoverURL: stringField(doc.Data, "imageUrl"),
		Year:     yearField(doc.Data, "year"),
	}
}

func encodeBook(book catalog.Book) map[string]any {
	authors := make([]any, 0, len(book.Authors))
	for _, a := range book.Authors {
		authors = append(authors, a)
	}
	return map[string]any{
		"title":    book.Title,
		"authors":  authors,
		"genre":    book.Genre,
		"imageUrl": book.CoverURL,
		"year":     book.Year,
	}
}
