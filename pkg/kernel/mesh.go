package kernel

// Mesh is an indexed triangle list as produced by a kernel.
// Vertices holds 3 floats per vertex (x,y,z) and Indices holds 3 uint32s
// per triangle. Kernels are free to emit one vertex per triangle corner;
// consumers that need shared topology weld coincident vertices.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Position returns the coordinates of vertex i. The second return value
// is false when i is out of range.
func (m *Mesh) Position(i uint32) ([3]float32, bool) {
	if int(i) >= m.VertexCount() {
		return [3]float32{}, false
	}
	o := int(i) * 3
	return [3]float32{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}, true
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) ([3]uint32, bool) {
	if t < 0 || t >= m.TriangleCount() {
		return [3]uint32{}, false
	}
	o := t * 3
	return [3]uint32{m.Indices[o], m.Indices[o+1], m.Indices[o+2]}, true
}
