// Package sqlite provides a SQLite-backed document store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DefaultPollInterval is used when Open receives a non-positive interval.
const DefaultPollInterval = 2 * time.Second

// Store persists documents in a single SQLite table.
type Store struct {
	sqlDB        *sql.DB
	pollInterval time.Duration
	notifier     docstore.Notifier
}

var _ docstore.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite document store and applies embedded migrations.
func Open(path string, pollInterval time.Duration) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serializes writers and pollers within the process.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Store{sqlDB: sqlDB, pollInterval: pollInterval}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner, collection string) (docstore.Document, error) {
	var (
		id        string
		raw       string
		version   int64
		updatedAt int64
	)
	if err := row.Scan(&id, &raw, &version, &updatedAt); err != nil {
		return docstore.Document{}, err
	}
	data, err := docstore.DecodeData([]byte(raw))
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
		Version:    version,
		UpdatedAt:  fromMillis(updatedAt),
	}, nil
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := s.ready(ctx); err != nil {
		return docstore.Document{}, err
	}
	if err := docstore.ValidateKey(collection, id); err != nil {
		return docstore.Document{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, data, version, updated_at FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	doc, err := scanDocument(row, collection)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, fmt.Errorf("%s: %w", docstore.Key(collection, id), docstore.ErrNotFound)
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("get document %s: %w", docstore.Key(collection, id), err)
	}
	return doc, nil
}

// List returns a collection in insertion order.
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("collection is required")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, data, version, updated_at FROM documents WHERE collection = ? ORDER BY position ASC`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer func() { _ = rows.Close() }()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows, collection)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// Put replaces the document body.
func (s *Store) Put(ctx context.Context, collection, id string, data map[string]any) (docstore.Document, error) {
	return s.write(ctx, collection, id, func(map[string]any) map[string]any {
		return docstore.MergeFields(nil, data)
	})
}

// Merge overwrites the given top-level fields.
func (s *Store) Merge(ctx context.Context, collection, id string, fields map[string]any) (docstore.Document, error) {
	return s.write(ctx, collection, id, func(existing map[string]any) map[string]any {
		return docstore.MergeFields(existing, fields)
	})
}

func (s *Store) write(ctx context.Context, collection, id string, mutate func(map[string]any) map[string]any) (docstore.Document, error) {
	if err := s.ready(ctx); err != nil {
		return docstore.Document{}, err
	}
	if err := docstore.ValidateKey(collection, id); err != nil {
		return docstore.Document{}, err
	}
	key := docstore.Key(collection, id)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("begin write %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanDocument(tx.QueryRowContext(ctx,
		`SELECT id, data, version, updated_at FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	), collection)
	exists := true
	if errors.Is(err, sql.ErrNoRows) {
		exists = false
	} else if err != nil {
		return docstore.Document{}, fmt.Errorf("read %s: %w", key, err)
	}

	data := mutate(current.Data)
	raw, err := docstore.EncodeData(data)
	if err != nil {
		return docstore.Document{}, err
	}
	now := time.Now().UTC()
	version := current.Version + 1

	if exists {
		_, err = tx.ExecContext(ctx,
			`UPDATE documents SET data = ?, version = ?, updated_at = ? WHERE collection = ? AND id = ?`,
			string(raw), version, toMillis(now), collection, id,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (collection, id, position, data, version, updated_at)
			 VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM documents WHERE collection = ?), ?, ?, ?)`,
			collection, id, collection, string(raw), version, toMillis(now),
		)
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("write %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return docstore.Document{}, fmt.Errorf("commit %s: %w", key, err)
	}

	s.notifier.Broadcast(key)
	return docstore.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
		Version:    version,
		UpdatedAt:  fromMillis(toMillis(now)),
	}, nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id,
	); err != nil {
		return fmt.Errorf("delete %s: %w", docstore.Key(collection, id), err)
	}
	s.notifier.Broadcast(docstore.Key(collection, id))
	return nil
}

// Watch observes one document. Writes made through this Store are delivered
// immediately; writes from other processes are picked up on the next poll.
func (s *Store) Watch(ctx context.Context, collection, id string) (<-chan docstore.Change, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := docstore.ValidateKey(collection, id); err != nil {
		return nil, err
	}
	wake := s.notifier.Subscribe(ctx, docstore.Key(collection, id))
	read := func(ctx context.Context) (docstore.Document, error) {
		return s.Get(ctx, collection, id)
	}
	return docstore.Poll(ctx, collection, id, s.pollInterval, wake, read), nil
}
