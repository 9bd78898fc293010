// Package overlap finds vertices that carry positive weight in two weight
// groups at once and turns a chosen subset of those overlaps into a face
// selection.
//
// Analyze scans a mesh snapshot and returns a Table with one Entry per
// unordered group pair, in the order pairs were first encountered.
// Materialize takes the entries a user flagged as selected and returns the
// faces that touch at least one of their vertices. Both operations are
// read-only with respect to the mesh.
package overlap
