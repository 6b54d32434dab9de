package usecase

import (
	"context"

	"github.com/tesso57/myshelf/internal/domain/event"
	"github.com/tesso57/myshelf/internal/logging"
)

// EventSource abstracts reading event documents.
type EventSource interface {
	Event(ctx context.Context, id string) (event.Event, error)
}

// EventService provides the event page content.
type EventService struct {
	Source EventSource
	Logger logging.Logger
}

// NewEventService constructs an EventService.
func NewEventService(source EventSource, logger logging.Logger) EventService {
	if logger == nil {
		logger = logging.Nop()
	}
	return EventService{Source: source, Logger: logger}
}

// Featured returns the published featured event, or the built-in one when
// none is published or the store cannot be read.
func (s EventService) Featured(ctx context.Context) (event.Event, bool) {
	if s.Source == nil {
		return event.Default(), false
	}
	ev, err := s.Source.Event(ctx, event.FeaturedID)
	if err != nil {
		s.Logger.Warn(ctx, "featured event unavailable, using built-in event", "err", err)
		return event.Default(), false
	}
	return ev, true
}
