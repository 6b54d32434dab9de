package shelfstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/event"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by Seed.
type SeedFile struct {
	Books   []SeedBook   `yaml:"books"`
	Members []SeedMember `yaml:"members"`
	Events  []SeedEvent  `yaml:"events"`
}

// SeedBook is one books entry.
type SeedBook struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Authors  []string `yaml:"authors"`
	Genre    string   `yaml:"genre"`
	ImageURL string   `yaml:"imageUrl"`
	Year     string   `yaml:"year"`
}

// SeedMember is one members entry.
type SeedMember struct {
	ID            string `yaml:"id"`
	FullName      string `yaml:"fullname"`
	IsPremium     bool   `yaml:"is_premium"`
	LastReadGenre string `yaml:"lastReadGenre"`
}

// SeedEvent is one events entry.
type SeedEvent struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	StartsAt time.Time `yaml:"starts_at"`
	Venue    string    `yaml:"venue"`
	City     string    `yaml:"city"`
	Host     string    `yaml:"host"`
	HostRole string    `yaml:"host_role"`
	Overview string    `yaml:"overview"`
}

// SeedReport counts written documents per collection.
type SeedReport struct {
	Books   int
	Members int
	Events  int
}

// ParseSeed decodes a seed file.
func ParseSeed(r io.Reader) (SeedFile, error) {
	var f SeedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return SeedFile{}, nil
		}
		return SeedFile{}, fmt.Errorf("parse seed: %w", err)
	}
	return f, nil
}

// Seed writes every entry of f into store. Books keep file order.
func Seed(ctx context.Context, store docstore.Store, f SeedFile) (SeedReport, error) {
	var report SeedReport
	books := Books{Store: store}
	for _, b := range f.Books {
		if err := books.PutBook(ctx, catalog.Book{
			ID:       strings.TrimSpace(b.ID),
			Title:    b.Title,
			Authors:  b.Authors,
			Genre:    b.Genre,
			CoverURL: b.ImageURL,
			Year:     b.Year,
		}); err != nil {
			return report, fmt.Errorf("seed book %q: %w", b.ID, err)
		}
		report.Books++
	}

	for _, m := range f.Members {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return report, fmt.Errorf("seed member: id is required")
		}
		if _, err := store.Put(ctx, docstore.Members, id, map[string]any{
			"fullname":      m.FullName,
			"is_premium":    m.IsPremium,
			"lastReadGenre": m.LastReadGenre,
		}); err != nil {
			return report, fmt.Errorf("seed member %q: %w", id, err)
		}
		report.Members++
	}

	events := Events{Store: store}
	for _, e := range f.Events {
		if err := events.PutEvent(ctx, event.Event{
			ID:       strings.TrimSpace(e.ID),
			Title:    e.Title,
			StartsAt: e.StartsAt,
			Venue:    e.Venue,
			City:     e.City,
			Host:     e.Host,
			HostRole: e.HostRole,
			Overview: e.Overview,
		}); err != nil {
			return report, fmt.Errorf("seed event %q: %w", e.ID, err)
		}
		report.Events++
	}
	return report, nil
}
