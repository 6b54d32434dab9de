package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/myshelf/internal/application/settings"
	"github.com/tesso57/myshelf/internal/application/usecase"
	"github.com/tesso57/myshelf/internal/domain/selection"
	"github.com/tesso57/myshelf/internal/logging"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
	"github.com/tesso57/myshelf/internal/presentation/tui/update"
	"github.com/tesso57/myshelf/internal/presentation/tui/view"
	listview "github.com/tesso57/myshelf/internal/presentation/tui/view/list"
)

// Services groups the application services the screens consume.
type Services struct {
	Composer *usecase.FeedComposer
	Details  usecase.DetailService
	Events   usecase.EventService
	Logger   logging.Logger
}

// Model represents the main application state.
type Model struct {
	settings  settings.Settings
	services  Services
	selection *selection.Controller
	start     state.Session
	state     *state.ModelState
}

// Option configures a Model.
type Option func(*Model)

// WithStartSession opens the given screen instead of the home screen.
func WithStartSession(session state.Session) Option {
	return func(m *Model) {
		m.start = session
	}
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, services Services, opts ...Option) *Model {
	if services.Logger == nil {
		services.Logger = logging.Nop()
	}
	m := &Model{
		settings:  cfg,
		services:  services,
		selection: selection.NewController(),
		start:     state.HomeView,
		state:     newModelState(cfg),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init enters the start screen.
func (m *Model) Init() tea.Cmd {
	if m.start == state.EventView {
		return update.EnterEvent(m.state, m.deps())
	}
	return update.EnterHome(m.state, m.deps())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.CatalogFetchedMsg:
		update.HandleCatalogFetchedMsg(m.state, msg, m.deps())
	case update.ProfileUpdatedMsg:
		cmds = append(cmds, update.HandleProfileUpdatedMsg(m.state, msg, m.deps()))
	case update.BookDetailLoadedMsg:
		update.HandleBookDetailLoadedMsg(m.state, msg, m.deps())
	case update.EventLoadedMsg:
		update.HandleEventLoadedMsg(m.state, msg)
		update.UpdateListSizes(m.state)
	}

	if m.state.Loading() {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Session {
	case state.HomeView:
		focused := m.state.FocusedList()
		*focused, cmd = focused.Update(msg)
		cmds = append(cmds, cmd)
	case state.EventView:
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// Close tears down the active screen. It is safe to call after the program exited.
func (m *Model) Close() {
	update.LeaveHome(m.deps())
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		Composer:    m.services.Composer,
		Details:     m.services.Details,
		Events:      m.services.Events,
		Selection:   m.selection,
		Logger:      m.services.Logger,
		OpenBrowser: openBrowser,
	}
}

func newModelState(cfg settings.Settings) *state.ModelState {
	muted := lipgloss.Color(cfg.Theme.Muted)
	st := &state.ModelState{
		Session:         state.HomeView,
		Focus:           state.RecommendedSection,
		RecommendedList: newBookList("Popular Books", muted),
		NewReleasesList: newBookList("New Releases", muted),
		Viewport:        newViewport(),
		Help:            help.New(),
		Spinner:         newSpinner(cfg),
		Keys:            state.NewKeyMap(cfg.KeyMap),
	}

	for _, l := range []*list.Model{&st.RecommendedList, &st.NewReleasesList} {
		l.KeyMap.CursorUp = st.Keys.Up
		l.KeyMap.CursorDown = st.Keys.Down
		l.KeyMap.PrevPage = st.Keys.UpPage
		l.KeyMap.NextPage = st.Keys.DownPage
	}
	st.Viewport.KeyMap.Up = st.Keys.Up
	st.Viewport.KeyMap.Down = st.Keys.Down
	st.Viewport.KeyMap.PageUp = st.Keys.UpPage
	st.Viewport.KeyMap.PageDown = st.Keys.DownPage

	return st
}

func newBookList(title string, muted lipgloss.Color) list.Model {
	l := list.New([]list.Item{}, listview.NewBookDelegate(muted), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
