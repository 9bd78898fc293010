package overlap

import (
	"fmt"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/chazu/weightscan/pkg/mesh"
)

// Status distinguishes the ways a materialization can come back empty.
// None of them is an error.
type Status int

const (
	StatusOK              Status = iota // union built, faces computed (possibly none)
	StatusNothingSelected               // no entry was flagged selected
	StatusEmptyUnion                    // selected entries hold no valid vertex
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNothingSelected:
		return "nothing selected"
	case StatusEmptyUnion:
		return "empty union"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Selection is the outcome of Materialize. Hosts replace their current
// face selection with Faces rather than merging into it.
type Selection struct {
	Status   Status
	Faces    *roaring.Bitmap
	Entries  int // selected entries that contributed
	Vertices int // size of the vertex union after dropping stale indices
	Stale    int // vertex indices dropped because the mesh no longer has them
}

// FaceIndices returns the selected faces in ascending order.
func (s Selection) FaceIndices() []uint32 {
	if s.Faces == nil {
		return nil
	}
	return s.Faces.ToArray()
}

// FaceCount returns the number of selected faces.
func (s Selection) FaceCount() int {
	if s.Faces == nil {
		return 0
	}
	return int(s.Faces.GetCardinality())
}

// Materialize returns the faces of src that have at least one loop vertex
// in the union of the selected entries' vertex sets. Entries whose Selected
// flag is false are ignored, so a whole table can be passed as-is.
//
// Vertex indices that no longer exist in src (stale entries from an older
// analysis) are dropped from the union rather than failing the call.
func Materialize(src mesh.FaceSource, entries []*Entry, opts ...Option) Selection {
	o := applyOptions(opts)
	start := time.Now()

	sel := Selection{Faces: roaring.New()}
	union := roaring.New()
	for _, e := range entries {
		if e == nil || !e.Selected {
			continue
		}
		sel.Entries++
		if e.Vertices != nil {
			union.Or(e.Vertices)
		}
	}

	switch {
	case sel.Entries == 0:
		sel.Status = StatusNothingSelected
	default:
		before := union.GetCardinality()
		union.RemoveRange(uint64(max(src.VertexCount(), 0)), math.MaxUint32+1)
		sel.Stale = int(before - union.GetCardinality())
		sel.Vertices = int(union.GetCardinality())
		if union.IsEmpty() {
			sel.Status = StatusEmptyUnion
			break
		}
		for f := range src.Faces() {
			if f.Index < 0 || uint64(f.Index) > math.MaxUint32 {
				continue
			}
			for _, v := range f.Verts {
				if v >= 0 && uint64(v) <= math.MaxUint32 && union.Contains(uint32(v)) {
					sel.Faces.Add(uint32(f.Index))
					break
				}
			}
		}
	}

	o.metrics.RecordMaterialize(sel.Status, sel.FaceCount(), time.Since(start))
	o.logger.Debug("overlap selection materialized",
		"status", sel.Status.String(),
		"entries", sel.Entries,
		"vertices", sel.Vertices,
		"stale", sel.Stale,
		"faces", sel.FaceCount(),
	)
	return sel
}
