package overlap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Pair is an unordered pair of group names stored in canonical order,
// so that (A, B) and (B, A) are the same key.
type Pair struct {
	A, B string
}

// NewPair returns the canonical pair for two group names.
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Label returns the display label "A + B".
func (p Pair) Label() string {
	return p.A + " + " + p.B
}

// Has reports whether name is one of the pair's groups.
func (p Pair) Has(name string) bool {
	return p.A == name || p.B == name
}

// Entry records the vertices weighted in both groups of a pair. Selected is
// UI state owned by the host; analysis always creates entries unselected.
type Entry struct {
	Pair     Pair
	Vertices *roaring.Bitmap
	Count    int
	Selected bool
}

// NewEntry builds an entry from a pair and vertex indices, keeping Count
// in step with the index set.
func NewEntry(p Pair, verts ...uint32) *Entry {
	bm := roaring.BitmapOf(verts...)
	return &Entry{Pair: p, Vertices: bm, Count: int(bm.GetCardinality())}
}

// Indices returns the vertex indices in ascending order.
func (e *Entry) Indices() []uint32 {
	if e.Vertices == nil {
		return nil
	}
	return e.Vertices.ToArray()
}

// VertexList returns the comma-joined ascending vertex indices, the form
// hosts render and export.
func (e *Entry) VertexList() string {
	idx := e.Indices()
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, ",")
}

// Row returns the list row text shown next to the selection checkbox.
func (e *Entry) Row() string {
	return fmt.Sprintf("%s — %d verts", e.Pair.Label(), e.Count)
}

// ParseVertexList parses a comma-joined vertex list as produced by
// VertexList. Blank items are skipped; items that are not valid indices are
// returned in invalid rather than failing the whole parse.
func ParseVertexList(s string) (indices []uint32, invalid []string) {
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, err := strconv.ParseUint(item, 10, 32)
		if err != nil {
			invalid = append(invalid, item)
			continue
		}
		indices = append(indices, uint32(v))
	}
	return indices, invalid
}
