package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tesso57/myshelf/internal/domain/catalog"
)

// CatalogSource abstracts reading book records from the document store.
type CatalogSource interface {
	ListBooks(ctx context.Context) ([]catalog.Book, error)
	Book(ctx context.Context, id string) (catalog.Book, error)
}

// CatalogService reads the shared catalog. It holds no mutable state and is
// safe to call from several screens at once.
type CatalogService struct {
	Source CatalogSource
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(source CatalogSource) CatalogService {
	return CatalogService{Source: source}
}

// Fetch reads the full catalog as one snapshot. Either the whole catalog is
// returned or an error wrapping ErrFetchFailure.
func (s CatalogService) Fetch(ctx context.Context) (*catalog.Snapshot, error) {
	if s.Source == nil {
		return nil, fmt.Errorf("%w: catalog source is not configured", ErrFetchFailure)
	}
	books, err := s.Source.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	snapshot, err := catalog.NewSnapshot(books)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	return snapshot, nil
}

// DetailService is the hand-off target of a selection: it receives only a book
// id and fetches the record itself.
type DetailService struct {
	Source CatalogSource
}

// NewDetailService constructs a DetailService.
func NewDetailService(source CatalogSource) DetailService {
	return DetailService{Source: source}
}

// Load reads one book by id.
func (s DetailService) Load(ctx context.Context, id string) (catalog.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Book{}, fmt.Errorf("book id is empty")
	}
	if s.Source == nil {
		return catalog.Book{}, fmt.Errorf("%w: catalog source is not configured", ErrFetchFailure)
	}
	book, err := s.Source.Book(ctx, id)
	if err != nil {
		return catalog.Book{}, fmt.Errorf("load book %s: %w", id, err)
	}
	return book, nil
}
