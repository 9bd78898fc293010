package mesh

import "iter"

// Membership is one (group, weight) entry on a vertex. A vertex is a member
// of a group only when Weight is strictly greater than zero.
type Membership struct {
	Group  int
	Weight float64
}

// Vertex is a mesh vertex with its ordered group memberships.
type Vertex struct {
	Index  int
	Groups []Membership
}

// Group is a named weight group. Names are not guaranteed unique by hosts
// but are the key used for reporting.
type Group struct {
	Index int
	Name  string
}

// Face is a polygon given by its boundary loop of vertex indices.
type Face struct {
	Index int
	Verts []int
}

// GroupSource resolves group indices to names.
type GroupSource interface {
	GroupCount() int
	GroupName(i int) (string, bool)
}

// VertexSource yields vertices in a stable order.
type VertexSource interface {
	VertexCount() int
	Vertices() iter.Seq[Vertex]
}

// FaceSource yields faces and reports how many vertices the mesh has so
// stale vertex references can be recognized.
type FaceSource interface {
	VertexCount() int
	Faces() iter.Seq[Face]
}

// Source is the full read-only view of a mesh needed by analysis and
// selection.
type Source interface {
	GroupSource
	VertexSource
	FaceSource
}

// Snapshot is an in-memory Source. Positions is optional and only filled
// by importers that know vertex coordinates.
type Snapshot struct {
	Groups    []Group
	Verts     []Vertex
	Polys     []Face
	Positions [][3]float32
}

var _ Source = (*Snapshot)(nil)

// NewSnapshot returns an empty snapshot with the given group names.
func NewSnapshot(groups ...string) *Snapshot {
	s := &Snapshot{}
	for _, name := range groups {
		s.AddGroup(name)
	}
	return s
}

// GroupCount returns the number of weight groups.
func (s *Snapshot) GroupCount() int { return len(s.Groups) }

// GroupName returns the name of group i.
func (s *Snapshot) GroupName(i int) (string, bool) {
	if i < 0 || i >= len(s.Groups) {
		return "", false
	}
	return s.Groups[i].Name, true
}

// GroupIndex returns the index of the first group named name.
func (s *Snapshot) GroupIndex(name string) (int, bool) {
	for i, g := range s.Groups {
		if g.Name == name {
			return i, true
		}
	}
	return -1, false
}

// VertexCount returns the number of vertices.
func (s *Snapshot) VertexCount() int { return len(s.Verts) }

// Vertices iterates vertices in index order.
func (s *Snapshot) Vertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for _, v := range s.Verts {
			if !yield(v) {
				return
			}
		}
	}
}

// Faces iterates faces in index order.
func (s *Snapshot) Faces() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for _, f := range s.Polys {
			if !yield(f) {
				return
			}
		}
	}
}

// AddGroup appends a group and returns its index.
func (s *Snapshot) AddGroup(name string) int {
	i := len(s.Groups)
	s.Groups = append(s.Groups, Group{Index: i, Name: name})
	return i
}

// AddVertex appends a vertex with the given memberships and returns its index.
func (s *Snapshot) AddVertex(groups ...Membership) int {
	i := len(s.Verts)
	s.Verts = append(s.Verts, Vertex{Index: i, Groups: groups})
	return i
}

// AddFace appends a face over the given vertex loop and returns its index.
func (s *Snapshot) AddFace(verts ...int) int {
	i := len(s.Polys)
	s.Polys = append(s.Polys, Face{Index: i, Verts: verts})
	return i
}

// SetWeight sets the weight of vertex v in group g, adding the membership
// if the vertex has none for g yet. It reports false when v is out of range.
func (s *Snapshot) SetWeight(v, g int, w float64) bool {
	if v < 0 || v >= len(s.Verts) {
		return false
	}
	vert := &s.Verts[v]
	for i := range vert.Groups {
		if vert.Groups[i].Group == g {
			vert.Groups[i].Weight = w
			return true
		}
	}
	vert.Groups = append(vert.Groups, Membership{Group: g, Weight: w})
	return true
}

// Weight returns the weight of vertex v in group g, or 0 when unassigned.
func (s *Snapshot) Weight(v, g int) float64 {
	if v < 0 || v >= len(s.Verts) {
		return 0
	}
	for _, m := range s.Verts[v].Groups {
		if m.Group == g {
			return m.Weight
		}
	}
	return 0
}
