package table

import "strings"

// Filter shows the rows whose symbol contains query, ignoring case, and hides
// the rest. An empty query shows every row. Row order is untouched.
func (v *View) Filter(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query = query
	needle := strings.ToLower(query)
	for _, r := range v.rows {
		r.Hidden = !strings.Contains(strings.ToLower(r.Cells[ColSymbol]), needle)
	}
}
