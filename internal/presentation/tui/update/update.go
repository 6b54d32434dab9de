// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/myshelf/internal/application/usecase"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/event"
	"github.com/tesso57/myshelf/internal/domain/member"
	"github.com/tesso57/myshelf/internal/domain/selection"
	"github.com/tesso57/myshelf/internal/logging"
	"github.com/tesso57/myshelf/internal/presentation/tui/intent"
	"github.com/tesso57/myshelf/internal/presentation/tui/presenter"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
)

// Deps groups external dependencies for updates.
type Deps struct {
	Composer    *usecase.FeedComposer
	Details     usecase.DetailService
	Events      usecase.EventService
	Selection   *selection.Controller
	Logger      logging.Logger
	OpenBrowser func(string) error
}

// CatalogFetchedMsg is emitted when a catalog fetch for a home activation completes.
type CatalogFetchedMsg struct {
	Result usecase.CatalogResult
}

// ProfileUpdatedMsg carries one profile state from the live subscription.
// Closed is set once the subscription has ended.
type ProfileUpdatedMsg struct {
	Activation   uint64
	Subscription *usecase.ProfileSubscription
	State        member.State
	Closed       bool
}

// BookDetailLoadedMsg is emitted after the detail hand-off fetched its record.
type BookDetailLoadedMsg struct {
	ID   string
	Book catalog.Book
	Err  error
}

// EventLoadedMsg is emitted after loading the featured event.
type EventLoadedMsg struct {
	Event     event.Event
	Published bool
}

// FetchCatalogCmd runs the catalog read for one activation off the render loop.
func FetchCatalogCmd(composer *usecase.FeedComposer, activation uint64) tea.Cmd {
	return func() tea.Msg {
		return CatalogFetchedMsg{Result: composer.FetchCatalog(context.Background(), activation)}
	}
}

// WaitForProfileCmd blocks until the subscription delivers its next state.
func WaitForProfileCmd(activation uint64, sub *usecase.ProfileSubscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-sub.Updates()
		if !ok {
			return ProfileUpdatedMsg{Activation: activation, Subscription: sub, Closed: true}
		}
		return ProfileUpdatedMsg{Activation: activation, Subscription: sub, State: st}
	}
}

// LoadBookDetailCmd fetches the record for the detail hand-off. Only the id crosses over.
func LoadBookDetailCmd(details usecase.DetailService, id string) tea.Cmd {
	id = strings.TrimSpace(id)
	return func() tea.Msg {
		book, err := details.Load(context.Background(), id)
		return BookDetailLoadedMsg{ID: id, Book: book, Err: err}
	}
}

// LoadEventCmd loads the featured event.
func LoadEventCmd(events usecase.EventService) tea.Cmd {
	return func() tea.Msg {
		ev, published := events.Featured(context.Background())
		return EventLoadedMsg{Event: ev, Published: published}
	}
}

// EnterHome activates the home screen: the previous profile subscription is
// replaced and one catalog fetch is started.
func EnterHome(s *state.ModelState, deps Deps) tea.Cmd {
	act := deps.Composer.Enter(context.Background())
	s.Session = state.HomeView
	s.Activation = act.Seq
	s.StatusMessage = ""
	refreshHome(s, deps, usecase.AllSections)
	return tea.Batch(
		FetchCatalogCmd(deps.Composer, act.Seq),
		WaitForProfileCmd(act.Seq, act.Subscription),
		s.Spinner.Tick,
	)
}

// LeaveHome tears the home screen down. The subscription is cancelled before
// it returns and the shared selection is cleared.
func LeaveHome(deps Deps) {
	if deps.Composer != nil {
		deps.Composer.Leave()
	}
	if deps.Selection != nil {
		deps.Selection.Reset()
	}
}

// HandleKeyMsg processes key input based on the current session.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		LeaveHome(deps)
		return tea.Quit, true
	}
	if s.Session == state.QuitView {
		return handleQuitView(s, msg, deps)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	if parsed.Type == intent.Quit {
		s.Previous = s.Session
		s.Session = state.QuitView
		return nil, true
	}
	if parsed.Type == intent.ToggleHelp {
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	}
	if s.Help.ShowAll && parsed.Type == intent.Back {
		s.Help.ShowAll = false
		return nil, true
	}

	switch s.Session {
	case state.HomeView:
		return handleHomeViewIntent(s, parsed, deps)
	case state.DetailView:
		return handleDetailViewIntent(s, parsed, deps)
	case state.EventView:
		return handleEventViewIntent(s, parsed, deps)
	default:
		return nil, false
	}
}

// HandleWindowSize stores the new window size and resizes lists.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
	if s.Session == state.EventView {
		refreshEventViewport(s)
	}
}

// HandleCatalogFetchedMsg folds a catalog result into the home screen.
// Results that arrive after leaving home are dropped.
func HandleCatalogFetchedMsg(s *state.ModelState, msg CatalogFetchedMsg, deps Deps) {
	changed := deps.Composer.ApplyCatalog(msg.Result)
	if changed == 0 {
		return
	}
	refreshHome(s, deps, changed)
}

// HandleProfileUpdatedMsg folds a profile state into the home screen and
// waits for the next one.
func HandleProfileUpdatedMsg(s *state.ModelState, msg ProfileUpdatedMsg, deps Deps) tea.Cmd {
	if msg.Closed {
		return nil
	}
	changed := deps.Composer.ApplyProfile(msg.Activation, msg.State)
	if changed == 0 {
		return nil
	}
	refreshHome(s, deps, changed)
	return WaitForProfileCmd(msg.Activation, msg.Subscription)
}

// HandleBookDetailLoadedMsg fills the detail modal when it still shows the same book.
func HandleBookDetailLoadedMsg(s *state.ModelState, msg BookDetailLoadedMsg, deps Deps) {
	if s.Session != state.DetailView || msg.ID != s.DetailID {
		return
	}
	s.DetailLoading = false
	if msg.Err != nil {
		s.Detail = nil
		s.DetailErr = msg.Err
		deps.logger().Warn(context.Background(), "book detail unavailable", "book", msg.ID, "err", msg.Err)
		return
	}
	s.DetailErr = nil
	s.Detail = new(msg.Book)
}

// HandleEventLoadedMsg renders the event page.
func HandleEventLoadedMsg(s *state.ModelState, msg EventLoadedMsg) {
	s.Event = msg.Event
	s.EventLoaded = true
	s.EventLoading = false
	refreshEventViewport(s)
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		LeaveHome(deps)
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Session = s.Previous
		return nil, true
	}
	return nil, true
}

func handleHomeViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Open:
		return openSelectedBook(s, deps), true
	case intent.NextSection, intent.PrevSection:
		if s.Focus == state.RecommendedSection {
			s.Focus = state.NewReleasesSection
		} else {
			s.Focus = state.RecommendedSection
		}
		return nil, true
	case intent.ShowEvent:
		return EnterEvent(s, deps), true
	case intent.ShowHome:
		return EnterHome(s, deps), true
	case intent.Back, intent.Register:
		return nil, true
	}
	return nil, false
}

func handleDetailViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back:
		closeDetail(s, deps)
		return nil, true
	case intent.Open:
		if s.Detail != nil && s.Detail.CoverURL != "" && deps.OpenBrowser != nil {
			if err := deps.OpenBrowser(s.Detail.CoverURL); err != nil {
				deps.logger().Warn(context.Background(), "open cover failed", "url", s.Detail.CoverURL, "err", err)
			}
		}
		return nil, true
	case intent.ShowEvent:
		closeDetail(s, deps)
		return EnterEvent(s, deps), true
	}
	// The detail is modal; other keys must not move the lists underneath.
	return nil, true
}

func handleEventViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back, intent.ShowHome:
		s.Registered = false
		return EnterHome(s, deps), true
	case intent.Register:
		if s.EventLoaded && !s.Registered {
			s.Registered = true
			s.StatusMessage = fmt.Sprintf("Registered for %s", s.Event.Title)
			deps.logger().Info(context.Background(), "event registration", "event", s.Event.ID)
			refreshEventViewport(s)
		}
		return nil, true
	case intent.ShowEvent:
		return nil, true
	}
	return nil, false
}

func openSelectedBook(s *state.ModelState, deps Deps) tea.Cmd {
	id := presenter.SelectedBookID(*s.FocusedList())
	if id == "" || deps.Selection == nil {
		return nil
	}
	deps.Selection.Select(id)
	current := deps.Selection.Current()
	if !current.Open {
		return nil
	}

	s.Previous = s.Session
	s.Session = state.DetailView
	s.DetailID = current.BookID
	s.Detail = nil
	s.DetailErr = nil
	s.DetailLoading = true
	return tea.Batch(LoadBookDetailCmd(deps.Details, current.BookID), s.Spinner.Tick)
}

func closeDetail(s *state.ModelState, deps Deps) {
	if deps.Selection != nil {
		deps.Selection.Dismiss()
	}
	s.Session = state.HomeView
	s.DetailLoading = false
}

// EnterEvent leaves the home screen and loads the event page.
func EnterEvent(s *state.ModelState, deps Deps) tea.Cmd {
	LeaveHome(deps)
	s.Session = state.EventView
	s.StatusMessage = ""
	s.EventLoading = true
	return tea.Batch(LoadEventCmd(deps.Events), s.Spinner.Tick)
}

func refreshHome(s *state.ModelState, deps Deps, changed usecase.Sections) {
	s.Home = deps.Composer.View()
	if changed.Has(usecase.SectionRecommended) {
		presenter.ApplyBookList(&s.RecommendedList, s.Home.Recommended, presenter.AllAuthors)
	}
	if changed.Has(usecase.SectionNewReleases) {
		presenter.ApplyBookList(&s.NewReleasesList, s.Home.NewReleases, presenter.LeadAuthor)
	}
	UpdateListSizes(s)
}

func (d Deps) logger() logging.Logger {
	if d.Logger == nil {
		return logging.Nop()
	}
	return d.Logger
}
