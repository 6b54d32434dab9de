package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/tesso57/myshelf/internal/application/settings"
	"github.com/tesso57/myshelf/internal/application/usecase"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/event"
)

type stubCatalogSource struct {
	mock.Mock
	books []catalog.Book
	err   error
}

func (s *stubCatalogSource) ListBooks(_ context.Context) ([]catalog.Book, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		books, _ := args.Get(0).([]catalog.Book)
		return books, args.Error(1)
	}
	if s.err != nil {
		return nil, s.err
	}
	return append([]catalog.Book(nil), s.books...), nil
}

func (s *stubCatalogSource) Book(_ context.Context, id string) (catalog.Book, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(id)
		book, _ := args.Get(0).(catalog.Book)
		return book, args.Error(1)
	}
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return catalog.Book{}, errors.New("not found")
}

type stubProfileSource struct {
	mu      sync.Mutex
	watches []chan usecase.ProfileEvent
}

func (s *stubProfileSource) WatchProfile(_ context.Context, _ string) (<-chan usecase.ProfileEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan usecase.ProfileEvent, 4)
	s.watches = append(s.watches, ch)
	return ch, nil
}

func (s *stubProfileSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watches)
}

type staticIdentity struct {
	who usecase.Identity
	err error
}

func (s staticIdentity) Current() (usecase.Identity, error) {
	return s.who, s.err
}

type stubEventSource struct {
	ev  event.Event
	err error
}

func (s stubEventSource) Event(_ context.Context, _ string) (event.Event, error) {
	return s.ev, s.err
}

type testEnv struct {
	catalog  *stubCatalogSource
	profiles *stubProfileSource
	service  *usecase.ProfileService
	composer *usecase.FeedComposer
}

func testSettings() settings.Settings {
	return settings.Settings{
		KeyMap: settings.KeyMapConfig{
			Up:       "k",
			Down:     "j",
			Left:     "h",
			Right:    "l",
			UpPage:   "ctrl+u",
			DownPage: "ctrl+d",
			Open:     "enter",
			Back:     "esc",
			Quit:     "q",
			Event:    "e",
			Home:     "H",
			Register: "r",
		},
		Theme: settings.ThemeConfig{Accent: "205", Badge: "220", Muted: "244"},
	}
}

func fantasyBooks() []catalog.Book {
	return []catalog.Book{
		{ID: "1", Title: "The Hobbit", Authors: []string{"J. R. R. Tolkien"}, Genre: "Fantasy"},
		{ID: "2", Title: "Gone Girl", Authors: []string{"Gillian Flynn"}, Genre: "Mystery"},
		{ID: "3", Title: "Good Omens", Authors: []string{"Terry Pratchett", "Neil Gaiman"}, Genre: "Fantasy"},
	}
}

func newTestModel(identity usecase.IdentityProvider, events usecase.EventSource, opts ...Option) (*Model, *testEnv) {
	env := &testEnv{
		catalog:  &stubCatalogSource{books: fantasyBooks()},
		profiles: &stubProfileSource{},
	}
	env.service = usecase.NewProfileService(env.profiles, nil)
	env.composer = usecase.NewFeedComposer(usecase.NewCatalogService(env.catalog), env.service, identity, nil)

	m := NewModel(testSettings(), Services{
		Composer: env.composer,
		Details:  usecase.NewDetailService(env.catalog),
		Events:   usecase.NewEventService(events, nil),
	}, opts...)
	m.state.Width = 120
	m.state.Height = 40
	return m, env
}

func ada() staticIdentity {
	return staticIdentity{who: usecase.Identity{MemberID: "m1", FullName: "Ada Lovelace"}}
}
