package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/dyike/indexstats/internal/table"
)

const (
	loadingText = "Loading market data..."
	noRowsText  = "No rows match the current search."
)

// Render draws the view snapshot: the last-updated label followed by the
// table, or by a placeholder while loading or when the table is hidden.
func Render(s table.Snapshot) string {
	p := PaletteFor(s.Dark)

	var b strings.Builder
	b.WriteString(p.Title.Render("Market Analysis"))
	b.WriteString("\n")
	if s.LastUpdated != "" {
		b.WriteString(p.Muted.Render("Last updated: " + s.LastUpdated))
		b.WriteString("\n")
	}

	switch {
	case s.Loading:
		b.WriteString(p.Info.Render(loadingText))
		b.WriteString("\n")
		return b.String()
	case !s.Shown:
		return b.String()
	}

	visible := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		if r.Hidden {
			continue
		}
		visible = append(visible, r.Cells[:])
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.Border).
		Headers(headers(s)...).
		Rows(visible...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return p.Header
			case row%2 == 1:
				return p.OddCell
			default:
				return p.Cell
			}
		})
	b.WriteString(t.String())
	b.WriteString("\n")

	if len(visible) == 0 && len(s.Rows) > 0 {
		b.WriteString(p.Muted.Render(noRowsText))
		b.WriteString("\n")
	}
	b.WriteString(p.Muted.Render(footer(s)))
	b.WriteString("\n")
	return b.String()
}

// headers labels the sorted column with an arrow for its direction.
func headers(s table.Snapshot) []string {
	out := make([]string, table.NumColumns)
	for i, name := range table.Columns {
		out[i] = name
		if i != s.SortColumn {
			continue
		}
		switch s.Direction {
		case table.Ascending:
			out[i] = name + " ▲"
		case table.Descending:
			out[i] = name + " ▼"
		}
	}
	return out
}

func footer(s table.Snapshot) string {
	text := fmt.Sprintf("%d of %d rows", s.VisibleCount(), len(s.Rows))
	if s.Query != "" {
		text += fmt.Sprintf(" matching %q", s.Query)
	}
	return text
}
