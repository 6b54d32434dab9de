// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines       = 2
	SectionTitleLines = 1
	EventTitleLines   = 2

	// Sidebar takes a third of the window unless the window is narrower
	// than CompactWidth, in which case only the main column is shown.
	SidebarTitleLines       = 2
	SidebarRightBorderWidth = 1
	SidebarWidthDivisor     = 3
	CompactWidth            = 60

	// BookItemLines is the title line plus the author line.
	BookItemLines     = 2
	ItemRightPadding  = 1
	ItemSafetyPadding = 1
)
