package sdfx

import (
	"math"
	"testing"
)

// testCells keeps marching cubes grids small so the suite stays fast.
const testCells = 24

func TestBox(t *testing.T) {
	k := NewWithCells(testCells)
	mesh, err := k.ToMesh(k.Box(100, 50, 25))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
	if mesh.VertexCount() != triCount*3 {
		t.Fatalf("vertex count %d != triCount*3 %d", mesh.VertexCount(), triCount*3)
	}
}

func TestCylinder(t *testing.T) {
	k := NewWithCells(testCells)
	mesh, err := k.ToMesh(k.Cylinder(50, 10))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestUnion(t *testing.T) {
	k := NewWithCells(testCells)
	upper := k.Cylinder(40, 8)
	lower := k.Translate(k.Cylinder(40, 6), 0, 0, -35)
	mesh, err := k.ToMesh(k.Union(upper, lower))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(k.Box(10, 10, 10), 100, 200, 300)

	min, max := translated.BoundingBox()
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	// A 10x20x30 box rotated 90 degrees about Z swaps its X and Y extents.
	rotated := k.Rotate(k.Box(10, 20, 30), 0, 0, 90)
	min, max := rotated.BoundingBox()
	dx := max[0] - min[0]
	dy := max[1] - min[1]
	const eps = 0.5
	if math.Abs(dx-20) > eps || math.Abs(dy-10) > eps {
		t.Errorf("rotated extents = (%.2f, %.2f), want ~(20, 10)", dx, dy)
	}
}

func TestNewWithCellsDefaults(t *testing.T) {
	if k := NewWithCells(0); k.cells != DefaultMeshCells {
		t.Errorf("NewWithCells(0).cells = %d, want %d", k.cells, DefaultMeshCells)
	}
}
