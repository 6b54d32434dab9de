package update

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/tesso57/myshelf/internal/presentation/tui/presenter"
	"github.com/tesso57/myshelf/internal/presentation/tui/state"
)

func refreshEventViewport(s *state.ModelState) {
	if s == nil || !s.EventLoaded {
		return
	}
	body := presenter.EventBody(s.Event, s.Registered)
	s.Viewport.SetContent(wrapText(body, eventWrapWidth(s)))
}

func eventWrapWidth(s *state.ModelState) int {
	width := s.Viewport.Width - s.Viewport.Style.GetHorizontalFrameSize()
	if width > 0 {
		return width
	}
	return clampMin(s.Width*2/3-s.Viewport.Style.GetHorizontalFrameSize(), 1)
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}
