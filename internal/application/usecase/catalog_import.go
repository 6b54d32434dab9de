package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/logging"
)

// BookFeedReader reads catalog records from a published new-arrivals feed.
type BookFeedReader interface {
	ReadBooks(ctx context.Context, url string) ([]catalog.Book, error)
}

// CatalogWriter stores catalog records. Only catalog-management flows write.
type CatalogWriter interface {
	PutBook(ctx context.Context, book catalog.Book) error
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Read    int
	Written int
	Skipped int
}

// CatalogImportService copies a new-arrivals feed into the catalog.
type CatalogImportService struct {
	Reader BookFeedReader
	Writer CatalogWriter
	Logger logging.Logger
}

// NewCatalogImportService constructs a CatalogImportService.
func NewCatalogImportService(reader BookFeedReader, writer CatalogWriter, logger logging.Logger) CatalogImportService {
	if logger == nil {
		logger = logging.Nop()
	}
	return CatalogImportService{Reader: reader, Writer: writer, Logger: logger}
}

// Import reads url and writes every record that has an id and a title.
func (s CatalogImportService) Import(ctx context.Context, url string) (ImportReport, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return ImportReport{}, fmt.Errorf("feed url is empty")
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return ImportReport{}, fmt.Errorf("feed url contains whitespace")
	}

	books, err := s.Reader.ReadBooks(ctx, trimmed)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read feed: %w", err)
	}

	report := ImportReport{Read: len(books)}
	for _, book := range books {
		if strings.TrimSpace(book.ID) == "" || strings.TrimSpace(book.Title) == "" {
			report.Skipped++
			continue
		}
		if err := s.Writer.PutBook(ctx, book); err != nil {
			return report, fmt.Errorf("write book %s: %w", book.ID, err)
		}
		report.Written++
	}
	s.Logger.Info(ctx, "catalog import finished", "url", trimmed, "read", report.Read, "written", report.Written, "skipped", report.Skipped)
	return report, nil
}
