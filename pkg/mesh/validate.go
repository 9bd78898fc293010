package mesh

import "fmt"

// Severity indicates whether a finding makes the snapshot unusable for
// selection or is merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // data the host must fix
	SeverityWarning                 // tolerated, may skew results
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue describes a single validation finding. Vertex and Face are -1 when
// the finding is not tied to one.
type Issue struct {
	Vertex   int
	Face     int
	Message  string
	Severity Severity
}

func (i Issue) Error() string {
	switch {
	case i.Vertex >= 0:
		return fmt.Sprintf("[%s] vertex %d: %s", i.Severity, i.Vertex, i.Message)
	case i.Face >= 0:
		return fmt.Sprintf("[%s] face %d: %s", i.Severity, i.Face, i.Message)
	default:
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
}

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// OK reports whether no error-severity findings were produced.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) add(i Issue) {
	if i.Severity == SeverityError {
		r.Errors = append(r.Errors, i)
	} else {
		r.Warnings = append(r.Warnings, i)
	}
}

// Validate checks a snapshot for shape violations that the analyzer
// tolerates but that usually mean the host handed over bad data. It is
// read-only and never called by the analyzer itself.
func Validate(src Source) ValidationResult {
	var r ValidationResult
	validateGroups(src, &r)
	validateVertices(src, &r)
	validateFaces(src, &r)
	return r
}

func validateGroups(src GroupSource, r *ValidationResult) {
	seen := make(map[string]int, src.GroupCount())
	for i := 0; i < src.GroupCount(); i++ {
		name, _ := src.GroupName(i)
		if first, dup := seen[name]; dup {
			r.add(Issue{
				Vertex: -1, Face: -1, Severity: SeverityWarning,
				Message: fmt.Sprintf("groups %d and %d share the name %q", first, i, name),
			})
			continue
		}
		seen[name] = i
	}
}

func validateVertices(src Source, r *ValidationResult) {
	groups := src.GroupCount()
	for v := range src.Vertices() {
		if v.Index < 0 {
			r.add(Issue{Vertex: v.Index, Face: -1, Severity: SeverityError, Message: "negative vertex index"})
			continue
		}
		seen := make(map[int]bool, len(v.Groups))
		for _, m := range v.Groups {
			switch {
			case m.Group < 0 || m.Group >= groups:
				r.add(Issue{
					Vertex: v.Index, Face: -1, Severity: SeverityError,
					Message: fmt.Sprintf("membership references group %d of %d", m.Group, groups),
				})
				continue
			case seen[m.Group]:
				r.add(Issue{
					Vertex: v.Index, Face: -1, Severity: SeverityWarning,
					Message: fmt.Sprintf("group %d listed more than once", m.Group),
				})
			}
			seen[m.Group] = true
			if m.Weight < 0 {
				r.add(Issue{
					Vertex: v.Index, Face: -1, Severity: SeverityWarning,
					Message: fmt.Sprintf("negative weight %g in group %d", m.Weight, m.Group),
				})
			} else if m.Weight > 1 {
				r.add(Issue{
					Vertex: v.Index, Face: -1, Severity: SeverityWarning,
					Message: fmt.Sprintf("weight %g above 1 in group %d", m.Weight, m.Group),
				})
			}
		}
	}
}

func validateFaces(src FaceSource, r *ValidationResult) {
	verts := src.VertexCount()
	for f := range src.Faces() {
		if len(f.Verts) < 3 {
			r.add(Issue{
				Vertex: -1, Face: f.Index, Severity: SeverityError,
				Message: fmt.Sprintf("loop has %d vertices, need at least 3", len(f.Verts)),
			})
		}
		for _, v := range f.Verts {
			if v < 0 || v >= verts {
				r.add(Issue{
					Vertex: -1, Face: f.Index, Severity: SeverityError,
					Message: fmt.Sprintf("loop references vertex %d of %d", v, verts),
				})
			}
		}
	}
}
