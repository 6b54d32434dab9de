package docstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ReadFunc reads the current state of one document.
type ReadFunc func(ctx context.Context) (Document, error)

// Poll observes one document by re-reading it on every tick and whenever wake
// fires. The first read is always delivered; after that only changes of
// existence, version or error are.
func Poll(ctx context.Context, collection, id string, interval time.Duration, wake <-chan struct{}, read ReadFunc) <-chan Change {
	out := make(chan Change, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last *Change
		for {
			ch := readChange(ctx, collection, id, read)
			if ctx.Err() != nil {
				return
			}
			if last == nil || changed(*last, ch) {
				select {
				case out <- ch:
				case <-ctx.Done():
					return
				}
				last = &ch
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-wake:
			}
		}
	}()
	return out
}

func readChange(ctx context.Context, collection, id string, read ReadFunc) Change {
	doc, err := read(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		return Change{Document: Document{Collection: collection, ID: id}}
	case err != nil:
		return Change{Document: Document{Collection: collection, ID: id}, Err: err}
	default:
		return Change{Document: doc, Exists: true}
	}
}

// changed compares UpdatedAt as well as Version: a delete followed by a
// re-create between two reads restarts Version at 1.
func changed(prev, next Change) bool {
	if next.Err != nil {
		return prev.Err == nil || prev.Err.Error() != next.Err.Error()
	}
	return prev.Err != nil || prev.Exists != next.Exists ||
		prev.Document.Version != next.Document.Version ||
		!prev.Document.UpdatedAt.Equal(next.Document.UpdatedAt)
}

// Notifier fans local write signals out to watchers of the same process.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

// Subscribe returns a channel that is signalled after writes to key. The
// subscription ends with ctx.
func (n *Notifier) Subscribe(ctx context.Context, key string) <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[string]map[chan struct{}]struct{})
	}
	if n.subs[key] == nil {
		n.subs[key] = make(map[chan struct{}]struct{})
	}
	n.subs[key][ch] = struct{}{}
	n.mu.Unlock()

	context.AfterFunc(ctx, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[key], ch)
		if len(n.subs[key]) == 0 {
			delete(n.subs, key)
		}
	})
	return ch
}

// Broadcast signals every subscriber of key without blocking.
func (n *Notifier) Broadcast(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions for key.
func (n *Notifier) Subscribers(key string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[key])
}
