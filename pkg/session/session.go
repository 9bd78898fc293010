package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/chazu/weightscan/pkg/config"
	"github.com/chazu/weightscan/pkg/engine"
	"github.com/chazu/weightscan/pkg/mesh"
	"github.com/chazu/weightscan/pkg/overlap"
)

// ErrNoTable is returned by operations that need an analysis result when
// none exists yet.
var ErrNoTable = errors.New("no overlap table")

const (
	msgNoGroups        = "No vertex groups found on this mesh"
	msgNoOverlapsFound = "No overlapping vertex weights found"
	msgRunFirst        = "No overlaps found. Run the analysis first"
	msgNothingSelected = "No overlap items selected. Check the boxes next to the items you want to select"
	msgEmptyUnion      = "No vertices found in selected overlap items"
)

// Session holds the overlap table of one document.
type Session struct {
	host    Host
	cfg     config.Config
	logger  *slog.Logger
	metrics overlap.MetricsCollector
	engine  *engine.Engine

	mu    sync.Mutex
	table *overlap.Table
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the collector passed to every analysis and selection.
func WithMetrics(m overlap.MetricsCollector) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// New creates a Session for host using cfg.
func New(host Host, cfg config.Config, opts ...Option) (*Session, error) {
	if host == nil {
		return nil, errors.New("session: nil host")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s := &Session{
		host:    host,
		cfg:     cfg,
		logger:  slog.Default(),
		metrics: overlap.NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(s)
	}
	s.engine = engine.NewEngine(
		engine.WithTimeout(cfg.RuleTimeout),
		engine.WithLogger(s.logger),
	)
	return s, nil
}

func (s *Session) overlapOptions() []overlap.Option {
	return []overlap.Option{
		overlap.WithProgressEvery(s.cfg.ProgressEvery),
		overlap.WithLogger(s.logger),
		overlap.WithMetrics(s.metrics),
	}
}

// Table returns the current overlap table, or nil before the first
// analysis. The returned table is shared with the session.
func (s *Session) Table() *overlap.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

func (s *Session) replace(t *overlap.Table) {
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}

// Analyze scans the host's active mesh and replaces the current table with
// the result. A cancelled or failed analysis leaves the previous table in
// place.
func (s *Session) Analyze(ctx context.Context) (Report, error) {
	src, err := s.host.Snapshot(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "overlap analysis failed", "error", err)
		return failure(err), err
	}
	if src.GroupCount() == 0 {
		s.replace(nil)
		return warning(OutcomeNoGroups, msgNoGroups), nil
	}

	opts := s.overlapOptions()
	if sink, ok := s.host.(ProgressSink); ok {
		sink.ProgressBegin(0, 100)
		defer sink.ProgressEnd()
		opts = append(opts, overlap.WithProgress(sink.ProgressUpdate))
	}

	t, err := overlap.Analyze(ctx, src, opts...)
	if err != nil {
		s.logger.WarnContext(ctx, "overlap analysis stopped", "error", err)
		return failure(err), err
	}
	s.replace(t)

	s.logger.InfoContext(ctx, "overlap analysis finished",
		"run", t.RunID,
		"vertices", src.VertexCount(),
		"groups", src.GroupCount(),
		"pairs", t.Len(),
	)
	if t.Len() == 0 {
		return Report{Level: LevelInfo, Outcome: OutcomeNoOverlaps, Message: msgNoOverlapsFound}, nil
	}
	return info("Found %d overlap pairs", t.Len()), nil
}

// SelectFaces replaces the host's face selection with every face touching
// a vertex of the selected overlap items. The host is put in edit mode for
// the duration of the call.
func (s *Session) SelectFaces(ctx context.Context) (Report, error) {
	src, err := s.host.Snapshot(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "face selection failed", "error", err)
		return failure(err), err
	}

	s.mu.Lock()
	if s.table.Len() == 0 {
		s.mu.Unlock()
		return warning(OutcomeNoOverlaps, msgRunFirst), nil
	}
	sel := overlap.Materialize(src, s.table.Entries, s.overlapOptions()...)
	run := s.table.RunID
	s.mu.Unlock()

	switch sel.Status {
	case overlap.StatusNothingSelected:
		return warning(OutcomeNothingSelected, msgNothingSelected), nil
	case overlap.StatusEmptyUnion:
		return warning(OutcomeEmptyUnion, msgEmptyUnion), nil
	}
	if sel.Stale > 0 {
		s.logger.WarnContext(ctx, "overlap table is older than the mesh, skipped missing vertices",
			"run", run, "stale", sel.Stale)
	}

	err = WithMode(s.host, ModeEdit, func() error {
		return s.host.SelectFaces(sel.FaceIndices())
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "face selection failed", "error", err)
		return failure(err), err
	}
	return info("Selected %d faces from %d vertices (%d overlap groups)",
		sel.FaceCount(), sel.Vertices, sel.Entries), nil
}

// SelectAll flags every overlap item.
func (s *Session) SelectAll() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.SelectAll()
	return info("Selected all %d overlap items", s.table.Len())
}

// DeselectAll clears every overlap item flag.
func (s *Session) DeselectAll() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.DeselectAll()
	return info("Deselected all overlap items")
}

// Toggle flips the flag of item i and returns its new value.
func (s *Session) Toggle(i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return false, ErrNoTable
	}
	if i < 0 || i >= s.table.Len() {
		return false, fmt.Errorf("session: no overlap item %d (table has %d)", i, s.table.Len())
	}
	v := !s.table.Entries[i].Selected
	s.table.SetSelected(i, v)
	return v, nil
}

// SelectWhere sets every item's flag to the result of a selection rule.
// Rule problems come back as eval errors and leave all flags unchanged.
func (s *Session) SelectWhere(rule string) (Report, []engine.EvalError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table.Len() == 0 {
		return warning(OutcomeNoOverlaps, msgRunFirst), nil, nil
	}
	n, evalErrs, err := s.engine.Apply(rule, s.table)
	if err != nil {
		return failure(err), nil, err
	}
	if len(evalErrs) > 0 {
		return Report{Level: LevelError, Outcome: OutcomeFailed, Message: evalErrs[0].Error()}, evalErrs, nil
	}
	return info("Rule selected %d/%d overlap items", n, s.table.Len()), nil, nil
}

// Rows returns the list text of every item, one per row.
func (s *Session) Rows() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return nil
	}
	rows := make([]string, len(s.table.Entries))
	for i, e := range s.table.Entries {
		rows[i] = e.Row()
	}
	return rows
}

// Status returns the "Selected: x/y" line, or "" when nothing is selected.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Status()
}

// UnusedGroups reports the groups of the active mesh that no vertex has
// positive weight in. The mesh is not modified.
func (s *Session) UnusedGroups(ctx context.Context) (Report, []string, error) {
	src, err := s.host.Snapshot(ctx)
	if err != nil {
		return failure(err), nil, err
	}
	var names []string
	for _, g := range mesh.UnusedGroups(src) {
		if name, ok := src.GroupName(g); ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return info("No unused vertex groups found"), nil, nil
	}
	return info("Found %d unused vertex groups: %s", len(names), strings.Join(names, ", ")), names, nil
}
