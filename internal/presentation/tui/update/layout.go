package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/myshelf/internal/presentation/tui/metrics"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
)

type layoutMetrics struct {
	sidebarWidth      int
	mainWidth         int
	sidebarHeight     int
	recommendedHeight int
	newReleasesHeight int
	viewportHeight    int
}

// UpdateListSizes recomputes list and viewport sizes from the window size.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.RecommendedList.SetSize(layout.mainWidth, layout.recommendedHeight)
	s.NewReleasesList.SetSize(layout.mainWidth, layout.newReleasesHeight)
	s.Viewport.Width = layout.mainWidth
	s.Viewport.Height = layout.viewportHeight
}

// SidebarSize returns the sidebar width and height for the current window.
// The width is zero in a compact window.
func SidebarSize(s *state.ModelState) (int, int) {
	layout := buildLayoutMetrics(s)
	return layout.sidebarWidth, layout.sidebarHeight
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	availableHeight := clampMin(s.Height-footerHeight(s), 1)

	headerHeight := 0
	if s.Home.HeaderVisible {
		headerHeight = metrics.HeaderLines
	}
	listsHeight := clampMin(availableHeight-headerHeight-2*metrics.SectionTitleLines, 2)
	recommendedHeight := clampMin(listsHeight/2, 1)
	newReleasesHeight := clampMin(listsHeight-recommendedHeight, 1)

	sidebarWidth, border := 0, 0
	if s.Width >= metrics.CompactWidth {
		sidebarWidth = s.Width / metrics.SidebarWidthDivisor
		border = metrics.SidebarRightBorderWidth
	}
	mainWidth := clampMin(s.Width-sidebarWidth-border, 1)

	return layoutMetrics{
		sidebarWidth:      sidebarWidth,
		mainWidth:         mainWidth,
		sidebarHeight:     clampMin(availableHeight-metrics.SidebarTitleLines, 1),
		recommendedHeight: reservePaginationSpace(s.RecommendedList, recommendedHeight),
		newReleasesHeight: reservePaginationSpace(s.NewReleasesList, newReleasesHeight),
		viewportHeight:    clampMin(availableHeight-metrics.EventTitleLines, 1),
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	text := state.FooterText(s.Session, s.Loading(), s.StatusMessage, state.FooterHelpText(s.Help, s.Keys))
	return lipgloss.Height(text)
}

func reservePaginationSpace(m list.Model, height int) int {
	if height < 1 || !m.ShowPagination() {
		return height
	}
	if height <= 1 {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems()) > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
