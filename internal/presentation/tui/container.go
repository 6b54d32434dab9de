// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/card"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/myshelf/internal/presentation/tui/components/main"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/modal"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/section"
	"github.com/tesso57/myshelf/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/myshelf/internal/presentation/tui/presenter"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
	"github.com/tesso57/myshelf/internal/presentation/tui/update"
	"github.com/tesso57/myshelf/internal/presentation/tui/view"
)

const (
	recommendedTitle = "Popular Books"
	newReleasesTitle = "New Releases"
)

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	width, height := update.SidebarSize(m.state)
	cardWidth := width - 2

	props := sidebar.Props{
		Width:  width,
		Height: height,
		Accent: m.accent(),
	}
	if m.state.Session == state.EventView {
		props.Title = "Event"
		if m.state.EventLoaded {
			props.View = card.Render(card.Props{
				Title:  m.state.Event.Title,
				Lines:  presenter.EventLines(m.state.Event),
				Width:  cardWidth,
				Accent: m.accent(),
				Muted:  m.muted(),
			})
		}
		return props
	}

	loan := catalog.CurrentlyReadingPlaceholder
	props.Title = "Currently Reading"
	props.Muted = m.muted()
	props.Sections = []string{recommendedTitle, newReleasesTitle}
	props.Focused = int(m.state.Focus)
	props.View = card.Render(card.Props{
		Title:  loan.Book.Title,
		Lines:  presenter.LoanLines(loan),
		Width:  cardWidth,
		Accent: m.accent(),
		Muted:  m.muted(),
	})
	return props
}

func (m *Model) buildHeaderProps() header.Props {
	home := m.state.Home
	return header.Props{
		Visible:      headerVisible(m.state),
		FirstName:    home.FirstName,
		Badge:        home.Badge,
		BadgeLoading: home.BadgeLoading,
		Spinner:      m.state.Spinner.View(),
		Accent:       m.accent(),
		BadgeColor:   lipgloss.Color(m.settings.Theme.Badge),
	}
}

func (m *Model) buildMainProps() mainview.Props {
	var body string
	switch m.state.Session {
	case state.EventView:
		body = m.buildEventBody()
	default:
		body = m.buildHomeBody()
	}

	return mainview.Props{
		Width:  m.state.RecommendedList.Width(),
		Height: max(m.state.Height-lipgloss.Height(m.buildFooterProps()), 1),
		Body:   body,
	}
}

func (m *Model) buildHomeBody() string {
	home := m.state.Home
	recommended := section.Render(section.Props{
		Title:   recommendedTitle,
		View:    listView(m.state.RecommendedList.View(), len(home.Recommended)),
		Loading: home.RecommendedLoading,
		Spinner: m.state.Spinner.View(),
		Empty:   recommendedEmptyText(m.state),
		Active:  m.state.Focus == state.RecommendedSection,
		Accent:  m.accent(),
		Muted:   m.muted(),
	})
	newReleases := section.Render(section.Props{
		Title:   newReleasesTitle,
		View:    listView(m.state.NewReleasesList.View(), len(home.NewReleases)),
		Loading: home.NewReleasesLoading,
		Spinner: m.state.Spinner.View(),
		Empty:   "No books in the catalog yet",
		Active:  m.state.Focus == state.NewReleasesSection,
		Accent:  m.accent(),
		Muted:   m.muted(),
	})
	return lipgloss.JoinVertical(lipgloss.Left, recommended, newReleases)
}

func (m *Model) buildEventBody() string {
	if !m.state.EventLoaded {
		return fmt.Sprintf("\n\n   %s Loading event...", m.state.Spinner.View())
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(m.accent()).Render(m.state.Event.Title)
	return title + "\n\n" + m.state.Viewport.View()
}

func (m *Model) buildModalProps() modal.Props {
	base := modal.Props{
		Visible: true,
		Width:   m.state.Width,
		Height:  m.state.Height,
		Accent:  m.accent(),
	}
	switch {
	case m.state.Session == state.QuitView:
		base.Kind = modal.Quit
		base.Body = "Are you sure you want to quit?\n\n(y/n)"
		return base
	case m.state.Session == state.DetailView:
		base.Kind = modal.Detail
		base.Title, base.Body = m.detailContent()
		return base
	case m.state.Help.ShowAll:
		base.Kind = modal.Help
		base.Body = m.state.Help.View(&m.state.Keys)
		return base
	}
	return modal.Props{Visible: false}
}

func (m *Model) detailContent() (string, string) {
	switch {
	case m.state.DetailLoading:
		return "Book", fmt.Sprintf("%s Loading book %s...", m.state.Spinner.View(), m.state.DetailID)
	case m.state.DetailErr != nil:
		return "Book", fmt.Sprintf("This book is not available right now.\n\n(%s to go back)", m.state.Keys.Back.Help().Key)
	case m.state.Detail != nil:
		body := presenter.BookDetail(*m.state.Detail)
		body += fmt.Sprintf("\n\n(%s to go back)", m.state.Keys.Back.Help().Key)
		return m.state.Detail.Title, body
	}
	return "Book", ""
}

func (m *Model) buildFooterProps() string {
	m.state.Help.Width = m.state.Width
	helpText := state.FooterHelpText(m.state.Help, m.state.Keys)
	return state.FooterText(m.state.Session, m.state.Loading(), m.state.StatusMessage, helpText)
}

func (m *Model) accent() lipgloss.Color {
	return lipgloss.Color(m.settings.Theme.Accent)
}

func (m *Model) muted() lipgloss.Color {
	return lipgloss.Color(m.settings.Theme.Muted)
}

func headerVisible(st *state.ModelState) bool {
	if st == nil {
		return false
	}
	return st.Session == state.HomeView && st.Home.HeaderVisible
}

func recommendedEmptyText(st *state.ModelState) string {
	if !st.Home.HeaderVisible {
		return "Sign in to get recommendations"
	}
	return "Finish a book to get recommendations"
}

func listView(rendered string, n int) string {
	if n == 0 {
		return ""
	}
	return rendered
}
