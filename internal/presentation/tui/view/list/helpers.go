package listview

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/myshelf/internal/presentation/tui/metrics"
	"github.com/tesso57/myshelf/internal/presentation/tui/textutil"
)

func withItemPadding(styles list.DefaultItemStyles) list.DefaultItemStyles {
	pad := func(s lipgloss.Style) lipgloss.Style { return s.PaddingRight(metrics.ItemRightPadding) }
	styles.NormalTitle = pad(styles.NormalTitle)
	styles.SelectedTitle = pad(styles.SelectedTitle)
	styles.DimmedTitle = pad(styles.DimmedTitle)
	styles.NormalDesc = pad(styles.NormalDesc)
	styles.SelectedDesc = pad(styles.SelectedDesc)
	styles.DimmedDesc = pad(styles.DimmedDesc)
	return styles
}

// bookStyles picks the title and author line styles for the row at index.
// The author line is always muted; the selected row keeps its border.
func bookStyles(styles list.DefaultItemStyles, m list.Model, index int, muted lipgloss.Color) (lipgloss.Style, lipgloss.Style) {
	if index == m.Index() {
		return styles.SelectedTitle, styles.SelectedDesc.Foreground(muted)
	}
	return styles.NormalTitle, styles.NormalDesc.Foreground(muted)
}

func truncateItemText(m list.Model, style lipgloss.Style, text string) string {
	maxWidth := m.Width() - style.GetHorizontalFrameSize() - metrics.ItemSafetyPadding
	return textutil.Truncate(text, maxWidth)
}

// renderBookLines writes one styled line per book field. Blank fields keep
// their line so every row has the same height.
func renderBookLines(w io.Writer, m list.Model, lines []string, styles []lipgloss.Style) {
	out := make([]string, len(lines))
	for i, text := range lines {
		out[i] = styles[i].Render(truncateItemText(m, styles[i], text))
	}
	_, _ = io.WriteString(w, strings.Join(out, "\n"))
}
