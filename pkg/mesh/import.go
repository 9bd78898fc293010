package mesh

import (
	"fmt"
	"math"

	"github.com/chazu/weightscan/pkg/kernel"
)

// weldKey identifies a welded vertex position on the tolerance grid.
type weldKey [3]int64

// FromTriangles builds a Snapshot from an indexed triangle list. Vertices
// closer than tol on every axis are welded into one, so the faces share
// topology the way an authored mesh does. Triangles that collapse to fewer
// than three distinct vertices after welding are dropped. The snapshot has
// no groups; hosts paint weights onto it afterwards.
func FromTriangles(m *kernel.Mesh, tol float64) (*Snapshot, error) {
	if m == nil {
		return nil, fmt.Errorf("mesh: nil triangle mesh")
	}
	if tol <= 0 {
		tol = 1e-6
	}

	s := &Snapshot{}
	remap := make(map[uint32]int, m.VertexCount())
	welded := make(map[weldKey]int)

	resolve := func(src uint32) (int, error) {
		if idx, ok := remap[src]; ok {
			return idx, nil
		}
		p, ok := m.Position(src)
		if !ok {
			return 0, fmt.Errorf("mesh: triangle references vertex %d of %d", src, m.VertexCount())
		}
		key := weldKey{
			int64(math.Round(float64(p[0]) / tol)),
			int64(math.Round(float64(p[1]) / tol)),
			int64(math.Round(float64(p[2]) / tol)),
		}
		idx, ok := welded[key]
		if !ok {
			idx = s.AddVertex()
			s.Positions = append(s.Positions, p)
			welded[key] = idx
		}
		remap[src] = idx
		return idx, nil
	}

	for t := 0; t < m.TriangleCount(); t++ {
		tri, _ := m.Triangle(t)
		var loop [3]int
		for j, src := range tri {
			idx, err := resolve(src)
			if err != nil {
				return nil, fmt.Errorf("%w (triangle %d)", err, t)
			}
			loop[j] = idx
		}
		if loop[0] == loop[1] || loop[1] == loop[2] || loop[0] == loop[2] {
			continue
		}
		s.AddFace(loop[0], loop[1], loop[2])
	}

	return s, nil
}

// Bounds returns the axis-aligned bounds of the recorded positions. The
// last return value is false when the snapshot has no positions.
func (s *Snapshot) Bounds() (min, max [3]float32, ok bool) {
	if len(s.Positions) == 0 {
		return min, max, false
	}
	min, max = s.Positions[0], s.Positions[0]
	for _, p := range s.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max, true
}
