// Package table holds the dashboard's view state: the rendered rows and the
// flags the user toggles. Rendering, filtering and sorting all mutate a View
// in place; nothing else keeps a copy of the ticker data.
package table

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dyike/indexstats/internal/models"
)

const (
	ColSymbol = iota
	ColOpeningScenario
	ColTrendObserved
	ColUpwardClose
	ColDownwardClose
	ColFlatClose

	NumColumns
)

// Columns are the table headers, in cell order.
var Columns = [NumColumns]string{
	models.FieldSymbol,
	models.FieldOpeningScenario,
	models.FieldTrendObserved,
	models.FieldUpwardClose,
	models.FieldDownwardClose,
	models.FieldFlatClose,
}

type Direction string

const (
	Unsorted   Direction = ""
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

type SortMode int

const (
	// SortShared keeps one direction flag for the whole table, so sorting any
	// column inverts whatever direction the previous sort used.
	SortShared SortMode = iota
	// SortPerColumn remembers the last direction of each column separately.
	SortPerColumn
)

type Row struct {
	Cells  [NumColumns]string
	Hidden bool
}

type View struct {
	mu       sync.Mutex
	collator *collate.Collator

	lastUpdated string
	rows        []*Row
	shown       bool
	loading     bool
	dark        bool
	query       string

	mode       SortMode
	direction  Direction
	columnDirs map[int]Direction
	sortColumn int
}

// NewView returns an empty view in its loading state.
func NewView(mode SortMode, dark bool) *View {
	return &View{
		collator:   collate.New(language.Und, collate.IgnoreCase),
		loading:    true,
		dark:       dark,
		mode:       mode,
		columnDirs: make(map[int]Direction),
		sortColumn: -1,
	}
}

// Render replaces every row with one row per record, in record order.
func (v *View) Render(records []models.TickerRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.render(records)
}

func (v *View) render(records []models.TickerRecord) {
	rows := make([]*Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, &Row{Cells: [NumColumns]string{
			rec.Symbol,
			rec.OpeningScenario,
			rec.TrendObserved,
			rec.UpwardClose.String() + "%",
			rec.DownwardClose.String() + "%",
			rec.FlatClose.String() + "%",
		}})
	}
	v.rows = rows
}

// ApplyEnvelope updates the whole view from a fetched envelope. The no-data
// envelope empties and hides the table and shows its message in place of the
// timestamp.
func (v *View) ApplyEnvelope(env *models.Envelope) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.loading = false
	if env.NoData() {
		v.lastUpdated = env.Message
		v.rows = nil
		v.shown = false
		return
	}
	v.lastUpdated = env.GeneratedOn
	v.render(env.Tickers)
	v.shown = true
}

// ToggleTheme flips dark mode and reports the new state.
func (v *View) ToggleTheme() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dark = !v.dark
	return v.dark
}

func (v *View) SetDark(dark bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dark = dark
}

func (v *View) SetSortMode(mode SortMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

// Snapshot is a copy of the view taken under its lock.
type Snapshot struct {
	LastUpdated string
	Rows        []Row
	Shown       bool
	Loading     bool
	Dark        bool
	Query       string
	SortColumn  int
	Direction   Direction
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]Row, len(v.rows))
	for i, r := range v.rows {
		rows[i] = *r
	}
	dir := v.direction
	if v.mode == SortPerColumn && v.sortColumn >= 0 {
		dir = v.columnDirs[v.sortColumn]
	}
	return Snapshot{
		LastUpdated: v.lastUpdated,
		Rows:        rows,
		Shown:       v.shown,
		Loading:     v.loading,
		Dark:        v.dark,
		Query:       v.query,
		SortColumn:  v.sortColumn,
		Direction:   dir,
	}
}

// Cells returns the text of every row, hidden ones included, in display order.
func (s Snapshot) Cells() [][]string {
	out := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		cells := make([]string, NumColumns)
		copy(cells, r.Cells[:])
		out[i] = cells
	}
	return out
}

func (s Snapshot) VisibleCount() int {
	n := 0
	for _, r := range s.Rows {
		if !r.Hidden {
			n++
		}
	}
	return n
}
