// Package docstore defines a small document store with per-document versions
// and live observation. Backends live in the sqlite and postgres subpackages.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Collections used by the application.
const (
	Members = "members"
	Books   = "books"
	Events  = "events"
)

// Document is one stored record. Version increases by one on every write.
type Document struct {
	Collection string
	ID         string
	Data       map[string]any
	Version    int64
	UpdatedAt  time.Time
}

// Change is one observation delivered by Watch.
type Change struct {
	Document Document
	Exists   bool
	Err      error
}

// Store is implemented by every backend.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns a collection in insertion order.
	List(ctx context.Context, collection string) ([]Document, error)
	// Put replaces the document body.
	Put(ctx context.Context, collection, id string, data map[string]any) (Document, error)
	// Merge overwrites only the given top-level fields, creating the document
	// when needed.
	Merge(ctx context.Context, collection, id string, fields map[string]any) (Document, error)
	Delete(ctx context.Context, collection, id string) error
	// Watch delivers the current state of a document first and then every
	// committed change, in commit order. The channel closes when ctx is done.
	Watch(ctx context.Context, collection, id string) (<-chan Change, error)
	Close() error
}

// ValidateKey checks a collection/id pair.
func ValidateKey(collection, id string) error {
	if strings.TrimSpace(collection) == "" {
		return fmt.Errorf("collection is required")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("document id is required")
	}
	if strings.Contains(collection, "/") {
		return fmt.Errorf("collection %q must not contain '/'", collection)
	}
	return nil
}

// MergeFields returns a copy of base with fields applied on top.
func MergeFields(base, fields map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(fields))
	maps.Copy(out, base)
	maps.Copy(out, fields)
	return out
}

// EncodeData serializes a document body.
func EncodeData(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

// DecodeData parses a document body.
func DecodeData(raw []byte) (map[string]any, error) {
	data := map[string]any{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return data, nil
}

// Key is the notification payload for a document.
func Key(collection, id string) string {
	return collection + "/" + id
}
