package overlap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Table is the ordered result of one analysis run. A new analysis always
// produces a new Table; tables are never updated incrementally.
type Table struct {
	RunID   string
	Entries []*Entry
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// Find returns the entry for the pair of groups x and y in either order.
func (t *Table) Find(x, y string) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	p := NewPair(x, y)
	return lo.Find(t.Entries, func(e *Entry) bool { return e.Pair == p })
}

// SelectAll flags every entry as selected.
func (t *Table) SelectAll() {
	t.setAll(true)
}

// DeselectAll clears every selection flag.
func (t *Table) DeselectAll() {
	t.setAll(false)
}

func (t *Table) setAll(v bool) {
	if t == nil {
		return
	}
	for _, e := range t.Entries {
		e.Selected = v
	}
}

// SetSelected sets the selection flag of entry i. It reports false when i
// is out of range.
func (t *Table) SetSelected(i int, v bool) bool {
	if i < 0 || i >= t.Len() {
		return false
	}
	t.Entries[i].Selected = v
	return true
}

// Selected returns the selected entries in table order.
func (t *Table) Selected() []*Entry {
	if t == nil {
		return nil
	}
	return lo.Filter(t.Entries, func(e *Entry, _ int) bool { return e.Selected })
}

// SelectedCount returns how many entries are selected.
func (t *Table) SelectedCount() int {
	if t == nil {
		return 0
	}
	return lo.CountBy(t.Entries, func(e *Entry) bool { return e.Selected })
}

// Status returns "Selected: x/y", or an empty string when nothing is
// selected.
func (t *Table) Status() string {
	n := t.SelectedCount()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("Selected: %d/%d", n, t.Len())
}

// Text renders the table for copy/export, one tab-separated
// "label, count, vertex list" line per entry.
func (t *Table) Text() string {
	var b strings.Builder
	for _, e := range t.entries() {
		b.WriteString(e.Pair.Label())
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(e.Count))
		b.WriteByte('\t')
		b.WriteString(e.VertexList())
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *Table) entries() []*Entry {
	if t == nil {
		return nil
	}
	return t.Entries
}
