// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Placeholder stands in for a missing catalog field.
const Placeholder = "-"

// SingleLine collapses whitespace, including newlines from imported titles, into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// Ranked prefixes a one-line title with its 1-based position in a section.
func Ranked(position int, title string) string {
	return strconv.Itoa(position) + ". " + SingleLine(title)
}

// OrPlaceholder returns text, or Placeholder when text is blank.
func OrPlaceholder(text string) string {
	if strings.TrimSpace(text) == "" {
		return Placeholder
	}
	return text
}

// Truncate trims a string to the given display width with an ellipsis.
// ANSI sequences do not count towards the width.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "...")
}
