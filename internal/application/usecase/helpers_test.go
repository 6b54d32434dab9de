package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/member"
)

type stubCatalogSource struct {
	mock.Mock
	mu    sync.Mutex
	books []catalog.Book
	err   error
	calls int
}

func (s *stubCatalogSource) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx)
		books, _ := args.Get(0).([]catalog.Book)
		return books, args.Error(1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]catalog.Book(nil), s.books...), nil
}

func (s *stubCatalogSource) Book(ctx context.Context, id string) (catalog.Book, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, id)
		book, _ := args.Get(0).(catalog.Book)
		return book, args.Error(1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return catalog.Book{}, errors.New("not found")
}

func (s *stubCatalogSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubCatalogSource) fetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeWatch struct {
	memberID string
	ch       chan ProfileEvent
	ctx      context.Context
}

func (w *fakeWatch) push(ev ProfileEvent) bool {
	select {
	case <-w.ctx.Done():
		return false
	default:
	}
	select {
	case w.ch <- ev:
		return true
	case <-w.ctx.Done():
		return false
	}
}

type fakeProfileSource struct {
	mu      sync.Mutex
	watches []*fakeWatch
	err     error
}

func (f *fakeProfileSource) WatchProfile(ctx context.Context, memberID string) (<-chan ProfileEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	w := &fakeWatch{memberID: memberID, ch: make(chan ProfileEvent, 8), ctx: ctx}
	f.mu.Lock()
	f.watches = append(f.watches, w)
	f.mu.Unlock()
	return w.ch, nil
}

func (f *fakeProfileSource) watch(t *testing.T, i int) *fakeWatch {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.watches) {
		t.Fatalf("watch %d not opened (have %d)", i, len(f.watches))
	}
	return f.watches[i]
}

type staticIdentity struct {
	who Identity
	err error
}

func (s staticIdentity) Current() (Identity, error) {
	return s.who, s.err
}

func nextState(t *testing.T, sub *ProfileSubscription) member.State {
	t.Helper()
	select {
	case st, ok := <-sub.Updates():
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		return st
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for profile update")
	}
	return member.State{}
}

func expectClosed(t *testing.T, sub *ProfileSubscription) {
	t.Helper()
	select {
	case _, ok := <-sub.Updates():
		if ok {
			t.Fatal("expected closed updates channel, got a value")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("updates channel was not closed")
	}
}

func fantasyCatalog() []catalog.Book {
	return []catalog.Book{
		{ID: "1", Title: "The Hobbit", Genre: "Fantasy", Authors: []string{"J. R. R. Tolkien"}},
		{ID: "2", Title: "Gone Girl", Genre: "Mystery", Authors: []string{"Gillian Flynn"}},
		{ID: "3", Title: "Mistborn", Genre: "Fantasy", Authors: []string{"Brandon Sanderson"}},
	}
}
