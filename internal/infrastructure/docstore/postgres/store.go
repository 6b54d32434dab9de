// Package postgres provides a PostgreSQL-backed document store. Watchers are
// woken by LISTEN/NOTIFY and fall back to polling when no listener is running.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore/postgres/migrations"
	"github.com/tesso57/myshelf/internal/logging"
)

// Channel is the NOTIFY channel written by the documents trigger.
const Channel = "document_changes"

// DefaultPollInterval is used when a non-positive interval is configured.
const DefaultPollInterval = 2 * time.Second

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// listenConn is the part of a dedicated pgx connection the listener needs.
type listenConn interface {
	Listen(ctx context.Context, channel string) error
	WaitForNotification(ctx context.Context) (string, error)
	Close(ctx context.Context) error
}

type pgxListenConn struct {
	conn *pgx.Conn
}

func (c pgxListenConn) Listen(ctx context.Context, channel string) error {
	_, err := c.conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	return err
}

func (c pgxListenConn) WaitForNotification(ctx context.Context) (string, error) {
	n, err := c.conn.WaitForNotification(ctx)
	if err != nil {
		return "", err
	}
	return n.Payload, nil
}

func (c pgxListenConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

// dialListener is a seam for tests; it opens a dedicated LISTEN connection.
var dialListener = func(ctx context.Context, dsn string) (listenConn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pgxListenConn{conn: conn}, nil
}

// Store persists documents in PostgreSQL.
type Store struct {
	db           *sql.DB
	dsn          string
	pollInterval time.Duration
	logger       logging.Logger
	notifier     docstore.Notifier

	mu         sync.Mutex
	closed     bool
	stop       context.CancelFunc
	listenDone chan struct{}
}

var _ docstore.Store = (*Store)(nil)

// Open connects to dsn, applies migrations and returns a Store.
func Open(ctx context.Context, dsn string, pollInterval time.Duration, logger logging.Logger) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return New(db, dsn, pollInterval, logger), nil
}

// New wraps an open database. An empty dsn disables LISTEN/NOTIFY.
func New(db *sql.DB, dsn string, pollInterval time.Duration, logger logging.Logger) *Store {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		db:           db,
		dsn:          dsn,
		pollInterval: pollInterval,
		logger:       logger.With("component", "docstore_postgres"),
	}
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Close stops the listener and closes the pool.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stop, done := s.stop, s.listenDone
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
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
		raw       []byte
		version   int64
		updatedAt time.Time
	)
	if err := row.Scan(&id, &raw, &version, &updatedAt); err != nil {
		return docstore.Document{}, err
	}
	data, err := docstore.DecodeData(raw)
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
		Version:    version,
		UpdatedAt:  updatedAt.UTC(),
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
	query := `SELECT id, data, version, updated_at FROM documents
		WHERE collection = $1 AND id = $2`
	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, collection, id), collection)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, fmt.Errorf("%s: %w", docstore.Key(collection, id), docstore.ErrNotFound)
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("db error: %w", err)
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
	query := `SELECT id, data, version, updated_at FROM documents
		WHERE collection = $1 ORDER BY position ASC`
	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows, collection)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	lockQuery := `SELECT id, data, version, updated_at FROM documents
		WHERE collection = $1 AND id = $2 FOR UPDATE`
	current, err := scanDocument(tx.QueryRowContext(ctx, lockQuery, collection, id), collection)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, fmt.Errorf("db error: %w", err)
	}

	data := mutate(current.Data)
	raw, err := docstore.EncodeData(data)
	if err != nil {
		return docstore.Document{}, err
	}
	version := current.Version + 1
	now := time.Now().UTC()

	upsert := `INSERT INTO documents (collection, id, data, version, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id) DO UPDATE
		SET data = EXCLUDED.data, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, collection, id, string(raw), version, now); err != nil {
		return docstore.Document{}, fmt.Errorf("db error: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return docstore.Document{}, fmt.Errorf("db error: %w", err)
	}

	s.notifier.Broadcast(docstore.Key(collection, id))
	return docstore.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
		Version:    version,
		UpdatedAt:  now,
	}, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := docstore.ValidateKey(collection, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	s.notifier.Broadcast(docstore.Key(collection, id))
	return nil
}

// Watch observes one document.
func (s *Store) Watch(ctx context.Context, collection, id string) (<-chan docstore.Change, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := docstore.ValidateKey(collection, id); err != nil {
		return nil, err
	}
	s.startListener()
	wake := s.notifier.Subscribe(ctx, docstore.Key(collection, id))
	read := func(ctx context.Context) (docstore.Document, error) {
		return s.Get(ctx, collection, id)
	}
	return docstore.Poll(ctx, collection, id, s.pollInterval, wake, read), nil
}

func (s *Store) startListener() {
	if s.dsn == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stop != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.listenDone = make(chan struct{})
	go s.listen(ctx, s.listenDone)
}

// listen forwards NOTIFY payloads to watchers and reconnects after errors.
func (s *Store) listen(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		err := s.listenOnceConn(ctx)
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "document listener disconnected, polling until reconnect", "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.pollInterval):
		}
	}
}

func (s *Store) listenOnceConn(ctx context.Context) error {
	conn, err := dialListener(ctx, s.dsn)
	if err != nil {
		return fmt.Errorf("connect listener: %w", err)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	if err := conn.Listen(ctx, Channel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.logger.Debug(ctx, "document listener connected", "channel", Channel)
	for {
		payload, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		s.notifier.Broadcast(payload)
	}
}
