package shelfstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tesso57/myshelf/internal/domain/event"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
)

// Events reads and writes the events collection.
type Events struct {
	Store docstore.Store
}

// Event reads one event by id.
func (e Events) Event(ctx context.Context, id string) (event.Event, error) {
	doc, err := e.Store.Get(ctx, docstore.Events, id)
	if err != nil {
		return event.Event{}, err
	}
	return decodeEvent(doc), nil
}

// PutEvent stores an event.
func (e Events) PutEvent(ctx context.Context, ev event.Event) error {
	id := strings.TrimSpace(ev.ID)
	if id == "" {
		return fmt.Errorf("event id is required")
	}
	data := map[string]any{
		"title":     ev.Title,
		"venue":     ev.Venue,
		"city":      ev.City,
		"host":      ev.Host,
		"host_role": ev.HostRole,
		"overview":  ev.Overview,
	}
	if !ev.StartsAt.IsZero() {
		data["starts_at"] = ev.StartsAt.UTC().Format(time.RFC3339)
	}
	_, err := e.Store.Put(ctx, docstore.Events, id, data)
	return err
}

func decodeEvent(doc docstore.Document) event.Event {
	ev := event.Event{
		ID:       doc.ID,
		Title:    stringField(doc.Data, "title"),
		Venue:    stringField(doc.Data, "venue"),
		City:     stringField(doc.Data, "city"),
		Host:     stringField(doc.Data, "host"),
		HostRole: stringField(doc.Data, "host_role"),
		Overview: stringField(doc.Data, "overview"),
	}
	if raw := stringField(doc.Data, "starts_at"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			ev.StartsAt = t
		}
	}
	return ev
}
