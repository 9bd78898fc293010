package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/chazu/weightscan/pkg/mesh"
)

// ErrNoMesh is returned by a Host when there is no active mesh to work on.
var ErrNoMesh = errors.New("no active mesh")

// Mode is the host's interaction mode for the active mesh.
type Mode int

const (
	ModeObject Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeObject:
		return "object"
	case ModeEdit:
		return "edit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Host is the application that owns the mesh, its mode state machine and
// its face selection. A session never touches mesh storage directly.
type Host interface {
	// Snapshot returns a consistent read-only view of the active mesh, or
	// ErrNoMesh.
	Snapshot(ctx context.Context) (mesh.Source, error)
	Mode() Mode
	SetMode(m Mode) error
	// SelectFaces replaces the current face selection with faces.
	SelectFaces(faces []uint32) error
}

// ProgressSink is implemented by hosts that can display a progress bar.
type ProgressSink interface {
	ProgressBegin(min, max float64)
	ProgressUpdate(value float64)
	ProgressEnd()
}

// WithMode switches h to mode m, runs fn, and switches back to the mode
// that was active before. The prior mode is restored whether fn succeeds,
// fails or panics.
func WithMode(h Host, m Mode, fn func() error) (err error) {
	prior := h.Mode()
	if prior == m {
		return fn()
	}
	if err := h.SetMode(m); err != nil {
		return fmt.Errorf("session: enter %s mode: %w", m, err)
	}
	defer func() {
		if rerr := h.SetMode(prior); rerr != nil && err == nil {
			err = fmt.Errorf("session: restore %s mode: %w", prior, rerr)
		}
	}()
	return fn()
}
