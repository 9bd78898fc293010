package overlap

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/chazu/weightscan/pkg/mesh"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Input is the part of a mesh snapshot the analyzer reads.
type Input interface {
	mesh.GroupSource
	mesh.VertexSource
}

// Analyze scans every vertex of src and returns one entry per pair of
// groups that share at least one vertex with positive weight in both.
// Entries appear in the order their pair was first encountered while
// iterating vertices, and are all unselected.
//
// A mesh without groups, without vertices, or without overlaps yields an
// empty table. The only error is cancellation of ctx, which is checked at
// the same cadence as progress reports.
func Analyze(ctx context.Context, src Input, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	start := time.Now()
	t := &Table{RunID: uuid.NewString()}

	if src.GroupCount() == 0 {
		o.metrics.RecordAnalyze(0, 0, time.Since(start), nil)
		o.logger.DebugContext(ctx, "overlap analysis skipped, mesh has no groups", "run", t.RunID)
		return t, nil
	}

	total := src.VertexCount()
	byPair := make(map[Pair]*Entry)
	tick := rate.Sometimes{Every: o.progressEvery}

	var (
		names   []string
		scanned int
		err     error
	)
	for v := range src.Vertices() {
		tick.Do(func() {
			o.progress(percent(scanned, total))
			err = ctx.Err()
		})
		if err != nil {
			break
		}
		scanned++

		if v.Index < 0 || uint64(v.Index) > math.MaxUint32 {
			continue
		}
		names = activeGroups(src, v, names[:0])
		if len(names) < 2 {
			continue
		}
		for i := 0; i < len(names)-1; i++ {
			for j := i + 1; j < len(names); j++ {
				p := Pair{A: names[i], B: names[j]}
				e, ok := byPair[p]
				if !ok {
					e = NewEntry(p)
					byPair[p] = e
					t.Entries = append(t.Entries, e)
				}
				e.Vertices.Add(uint32(v.Index))
			}
		}
	}

	if err != nil {
		o.metrics.RecordAnalyze(scanned, 0, time.Since(start), err)
		return nil, fmt.Errorf("overlap: analysis stopped after %d of %d vertices: %w", scanned, total, err)
	}

	for _, e := range t.Entries {
		e.Count = int(e.Vertices.GetCardinality())
	}
	o.progress(100)

	o.metrics.RecordAnalyze(scanned, len(t.Entries), time.Since(start), nil)
	o.logger.DebugContext(ctx, "overlap analysis complete",
		"run", t.RunID,
		"vertices", scanned,
		"pairs", len(t.Entries),
		"elapsed", time.Since(start),
	)
	return t, nil
}

// activeGroups appends the sorted, de-duplicated names of the groups in
// which v has strictly positive weight. Memberships naming unknown groups
// are skipped, and groups sharing a name collapse into one.
func activeGroups(src mesh.GroupSource, v mesh.Vertex, dst []string) []string {
	for _, m := range v.Groups {
		if !(m.Weight > 0) {
			continue
		}
		name, ok := src.GroupName(m.Group)
		if !ok {
			continue
		}
		dst = append(dst, name)
	}
	slices.Sort(dst)
	return slices.Compact(dst)
}

func percent(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
