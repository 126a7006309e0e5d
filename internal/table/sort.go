package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrColumnRange = errors.New("column out of range")

// Sort reorders all rows, hidden ones included, by the text of column and
// returns the direction it used. Cells that both parse as numbers once a
// trailing "%" is dropped compare numerically; anything else compares as
// case-insensitive text. Equal cells keep their relative order.
func (v *View) Sort(column int) (Direction, error) {
	if column < 0 || column >= NumColumns {
		return Unsorted, fmt.Errorf("%w: %d", ErrColumnRange, column)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	dir := v.nextDirection(column)
	sort.SliceStable(v.rows, func(i, j int) bool {
		a, b := v.rows[i].Cells[column], v.rows[j].Cells[column]
		if dir == Descending {
			a, b = b, a
		}
		return v.compare(a, b) < 0
	})
	v.sortColumn = column
	return dir, nil
}

func (v *View) nextDirection(column int) Direction {
	last := v.direction
	if v.mode == SortPerColumn {
		last = v.columnDirs[column]
	}

	next := Ascending
	if last == Ascending {
		next = Descending
	}

	if v.mode == SortPerColumn {
		v.columnDirs[column] = next
	} else {
		v.direction = next
	}
	return next
}

func (v *View) compare(a, b string) int {
	a, b = sortKey(a), sortKey(b)
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA == nil && errB == nil {
		return da.Cmp(db)
	}
	return v.collator.CompareString(a, b)
}

func sortKey(cell string) string {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimSuffix(cell, "%")
	return strings.ToLower(strings.TrimSpace(cell))
}
