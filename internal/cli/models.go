package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyike/indexstats/internal/table"
)

// MenuAction is one entry of the interactive dashboard menu.
type MenuAction string

const (
	ActionRefresh     MenuAction = "🔄 Refresh data"
	ActionReload      MenuAction = "📥 Reload table"
	ActionSearch      MenuAction = "🔍 Search symbols"
	ActionSort        MenuAction = "↕️  Sort by column"
	ActionToggleTheme MenuAction = "🌓 Toggle theme"
	ActionExportCSV   MenuAction = "📄 Export CSV"
	ActionExportPDF   MenuAction = "📑 Export PDF"
	ActionQuit        MenuAction = "🚪 Quit"
)

var menuActions = []MenuAction{
	ActionRefresh,
	ActionReload,
	ActionSearch,
	ActionSort,
	ActionToggleTheme,
	ActionExportCSV,
	ActionExportPDF,
	ActionQuit,
}

// columnAliases are the short names accepted wherever a column is named on
// the command line, besides the full header and the 1-based position.
var columnAliases = map[string]int{
	"symbol":   table.ColSymbol,
	"opening":  table.ColOpeningScenario,
	"scenario": table.ColOpeningScenario,
	"trend":    table.ColTrendObserved,
	"up":       table.ColUpwardClose,
	"upward":   table.ColUpwardClose,
	"down":     table.ColDownwardClose,
	"downward": table.ColDownwardClose,
	"flat":     table.ColFlatClose,
}

// parseColumn resolves a column given as a 1-based index, a header or an alias.
func parseColumn(name string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, fmt.Errorf("column name is empty")
	}
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > table.NumColumns {
			return 0, fmt.Errorf("column %d out of range 1-%d", n, table.NumColumns)
		}
		return n - 1, nil
	}
	for i, header := range table.Columns {
		if strings.ToLower(header) == key {
			return i, nil
		}
	}
	if col, ok := columnAliases[key]; ok {
		return col, nil
	}
	return 0, fmt.Errorf("unknown column %q", name)
}
