package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type scriptedReader struct {
	mu    sync.Mutex
	doc   Document
	err   error
	reads int
}

func (r *scriptedReader) read(context.Context) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	return r.doc, r.err
}

func (r *scriptedReader) set(doc Document, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc, r.err = doc, err
}

func recv(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestPollDeliversInitialStateAndChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &scriptedReader{}
	r.set(Document{ID: "m1", Version: 1}, nil)
	wake := make(chan struct{}, 1)
	ch := Poll(ctx, Members, "m1", time.Hour, wake, r.read)

	if c := recv(t, ch); !c.Exists || c.Document.Version != 1 {
		t.Fatalf("initial = %#v", c)
	}

	r.set(Document{ID: "m1", Version: 2}, nil)
	wake <- struct{}{}
	if c := recv(t, ch); c.Document.Version != 2 {
		t.Fatalf("second = %#v", c)
	}

	r.set(Document{}, ErrNotFound)
	wake <- struct{}{}
	if c := recv(t, ch); c.Exists || c.Err != nil || c.Document.ID != "m1" {
		t.Fatalf("deleted = %#v", c)
	}

	r.set(Document{}, errors.New("offline"))
	wake <- struct{}{}
	if c := recv(t, ch); c.Err == nil {
		t.Fatalf("expected error change, got %#v", c)
	}
}

func TestPollSkipsUnchangedVersions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &scriptedReader{}
	r.set(Document{ID: "m1", Version: 3}, nil)
	ch := Poll(ctx, Members, "m1", 5*time.Millisecond, nil, r.read)
	recv(t, ch)

	time.Sleep(40 * time.Millisecond)
	select {
	case c := <-ch:
		t.Fatalf("unexpected change %#v", c)
	default:
	}

	r.set(Document{ID: "m1", Version: 4}, nil)
	if c := recv(t, ch); c.Document.Version != 4 {
		t.Fatalf("change = %#v", c)
	}
}

func TestPollDeliversRecreatedDocumentWithSameVersion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	r := &scriptedReader{}
	r.set(Document{ID: "m1", Version: 1, UpdatedAt: created, Data: map[string]any{"lastReadGenre": "Fantasy"}}, nil)
	wake := make(chan struct{}, 1)
	ch := Poll(ctx, Members, "m1", time.Hour, wake, r.read)
	recv(t, ch)

	r.set(Document{ID: "m1", Version: 1, UpdatedAt: created.Add(time.Second), Data: map[string]any{"lastReadGenre": "Mystery"}}, nil)
	wake <- struct{}{}
	c := recv(t, ch)
	if !c.Exists || c.Document.Data["lastReadGenre"] != "Mystery" {
		t.Fatalf("recreated = %#v", c)
	}
}

func TestPollClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &scriptedReader{}
	r.set(Document{ID: "m1", Version: 1}, nil)
	ch := Poll(ctx, Members, "m1", time.Hour, nil, r.read)
	recv(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestNotifier(t *testing.T) {
	var n Notifier
	ctx, cancel := context.WithCancel(context.Background())
	ch := n.Subscribe(ctx, Key(Members, "m1"))
	other := n.Subscribe(context.Background(), Key(Members, "m2"))

	n.Broadcast(Key(Members, "m1"))
	n.Broadcast(Key(Members, "m1"))

	select {
	case <-ch:
	default:
		t.Fatal("expected signal")
	}
	select {
	case <-other:
		t.Fatal("unrelated key signalled")
	default:
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for n.Subscribers(Key(Members, "m1")) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not released")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMergeFieldsDoesNotMutateBase(t *testing.T) {
	base := map[string]any{"fullname": "Ada", "is_premium": false}
	out := MergeFields(base, map[string]any{"is_premium": true})
	if base["is_premium"] != false {
		t.Fatal("base mutated")
	}
	if out["is_premium"] != true || out["fullname"] != "Ada" {
		t.Fatalf("merged = %#v", out)
	}
}

func TestValidateKey(t *testing.T) {
	if err := ValidateKey(Books, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tc := range [][2]string{{"", "1"}, {Books, " "}, {"a/b", "1"}} {
		if err := ValidateKey(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for %q", tc)
		}
	}
}

func TestDecodeData(t *testing.T) {
	data, err := DecodeData([]byte(`{"year":2016,"title":"It"}`))
	if err != nil {
		t.Fatal(err)
	}
	if data["year"].(float64) != 2016 {
		t.Fatalf("year = %#v", data["year"])
	}
	if _, err := DecodeData([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
	empty, err := DecodeData(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty = %#v err=%v", empty, err)
	}
}
