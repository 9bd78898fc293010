package mesh

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBuilder(t *testing.T) {
	s := NewSnapshot("Hip", "Spine")
	tail := s.AddGroup("Tail")
	v0 := s.AddVertex(Membership{Group: 0, Weight: 0.6})
	v1 := s.AddVertex()
	f := s.AddFace(v0, v1, v0)

	assert.Equal(t, 2, tail)
	assert.Equal(t, 3, s.GroupCount())
	assert.Equal(t, 2, s.VertexCount())
	assert.Equal(t, 0, f)

	name, ok := s.GroupName(1)
	require.True(t, ok)
	assert.Equal(t, "Spine", name)

	idx, ok := s.GroupIndex("Tail")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestGroupNameOutOfRange(t *testing.T) {
	s := NewSnapshot("Hip")
	for _, i := range []int{-1, 1, 99} {
		_, ok := s.GroupName(i)
		assert.False(t, ok, "GroupName(%d)", i)
	}
	_, ok := s.GroupIndex("Nope")
	assert.False(t, ok)
}

func TestSetWeight(t *testing.T) {
	s := NewSnapshot("Hip", "Spine")
	v := s.AddVertex(Membership{Group: 0, Weight: 1})

	require.True(t, s.SetWeight(v, 0, 0.25))
	require.True(t, s.SetWeight(v, 1, 0.75))
	assert.False(t, s.SetWeight(5, 0, 1))

	assert.InDelta(t, 0.25, s.Weight(v, 0), 1e-9)
	assert.InDelta(t, 0.75, s.Weight(v, 1), 1e-9)
	assert.Zero(t, s.Weight(v, 7))
	assert.Zero(t, s.Weight(-1, 0))
	assert.Len(t, s.Verts[v].Groups, 2)
}

func TestIteratorsStopEarly(t *testing.T) {
	s := NewSnapshot()
	for i := 0; i < 5; i++ {
		s.AddVertex()
		s.AddFace(i, i, i)
	}

	var seen []int
	for v := range s.Vertices() {
		seen = append(seen, v.Index)
		if v.Index == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)

	var faces []int
	for f := range s.Faces() {
		faces = append(faces, f.Index)
	}
	assert.True(t, slices.Equal([]int{0, 1, 2, 3, 4}, faces))
}

func TestUnusedGroups(t *testing.T) {
	tests := []struct {
		name string
		snap func() *Snapshot
		want []int
	}{
		{
			name: "no groups",
			snap: func() *Snapshot { return NewSnapshot() },
			want: nil,
		},
		{
			name: "all unused",
			snap: func() *Snapshot {
				s := NewSnapshot("A", "B")
				s.AddVertex()
				return s
			},
			want: []int{0, 1},
		},
		{
			name: "zero weight does not count",
			snap: func() *Snapshot {
				s := NewSnapshot("A", "B", "C")
				s.AddVertex(Membership{Group: 0, Weight: 0}, Membership{Group: 1, Weight: 0.1})
				s.AddVertex(Membership{Group: 9, Weight: 1})
				return s
			},
			want: []int{0, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnusedGroups(tt.snap()))
		})
	}
}
