// Package state holds UI state types for the TUI.
package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/myshelf/internal/application/usecase"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/event"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session         Session
	Previous        Session
	Focus           Section
	RecommendedList list.Model
	NewReleasesList list.Model
	Viewport        viewport.Model
	Help            help.Model
	Spinner         spinner.Model
	Keys            KeyMap
	Width           int
	Height          int

	// Home is the last composed home screen.
	Home usecase.HomeView
	// Activation is the sequence of the home screen entry being rendered.
	Activation uint64

	DetailID      string
	Detail        *catalog.Book
	DetailLoading bool
	DetailErr     error

	Event         event.Event
	EventLoaded   bool
	EventLoading  bool
	Registered    bool
	StatusMessage string
}

// Loading reports whether any spinner-driven request is outstanding.
func (s *ModelState) Loading() bool {
	return s.Home.BadgeLoading || s.Home.RecommendedLoading || s.Home.NewReleasesLoading ||
		s.DetailLoading || s.EventLoading
}

// FocusedList returns the list that receives navigation keys.
func (s *ModelState) FocusedList() *list.Model {
	if s.Focus == NewReleasesSection {
		return &s.NewReleasesList
	}
	return &s.RecommendedList
}
