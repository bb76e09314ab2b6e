package guard

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Resource access errors (prd003-guarded-resource R6).
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUseAfterRelease = errors.New("resource used after release")
)

// State describes where a Resource is in its lifecycle. Active is the only
// state in which the handle may be touched; Released and Moved are terminal.
type State uint8

const (
	StateActive State = iota
	StateReleased
	StateMoved
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateReleased:
		return "released"
	case StateMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// Resource wraps one externally-acquired handle together with the release
// function paired with the handle's origin (the same allocation family
// that produced it). The underlying release runs at most once; every
// operation attempted after release or transfer is rejected before the
// handle is touched. All methods are safe for concurrent use.
// Implements: prd003-guarded-resource R1, R2.
type Resource[H any] struct {
	mu      sync.Mutex
	id      string
	state   State
	handle  H
	release func(H) error
}

// Acquire takes exclusive ownership of handle. The release function must
// be non-nil; it is the only code that will ever free or close the handle.
// Returns ErrInvalidArgument for a nil release function.
func Acquire[H any](handle H, release func(H) error) (*Resource[H], error) {
	if release == nil {
		return nil, ErrInvalidArgument
	}
	return &Resource[H]{
		id:      newResourceID(),
		handle:  handle,
		release: release,
	}, nil
}

// ID returns the diagnostic identifier of the underlying handle. The ID
// follows the handle across Move, so a transferred resource keeps the
// identity it was acquired with.
func (r *Resource[H]) ID() string {
	return r.id
}

// State returns the current lifecycle state.
func (r *Resource[H]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Release frees the handle exactly once and transitions to StateReleased.
// Calling Release again, or on a moved-from resource, is a no-op returning
// nil; it is never a fault and never a second free. An error from the
// underlying release function is propagated, but the resource still counts
// as released.
// Implements: prd003-guarded-resource R3.
func (r *Resource[H]) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateActive {
		return nil
	}
	// Transition before calling out so the free can never run twice,
	// even if the release function panics.
	r.state = StateReleased
	release, handle := r.release, r.handle
	r.drop()
	return release(handle)
}

// With runs fn against the handle while holding the resource's lock, so no
// release can interleave with the operation. Returns ErrUseAfterRelease
// without touching the handle if the resource is released or moved. fn
// must not call methods of the same Resource.
// Implements: prd003-guarded-resource R4.
func (r *Resource[H]) With(fn func(H) error) error {
	if fn == nil {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateActive {
		return ErrUseAfterRelease
	}
	return fn(r.handle)
}

// Move transfers exclusive ownership to a new Resource and leaves this one
// in StateMoved. The moved-from holder can never release or touch the
// handle again; its Release is a no-op. Moving a released or moved
// resource fails with ErrUseAfterRelease.
// Implements: prd003-guarded-resource R5.
func (r *Resource[H]) Move() (*Resource[H], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateActive {
		return nil, ErrUseAfterRelease
	}
	moved := &Resource[H]{
		id:      r.id,
		handle:  r.handle,
		release: r.release,
	}
	r.state = StateMoved
	r.drop()
	return moved, nil
}

// drop clears the handle and release function so a terminal resource holds
// no reference to either. Callers hold r.mu.
func (r *Resource[H]) drop() {
	var zero H
	r.handle = zero
	r.release = nil
}

// newResourceID returns a UUID v7 string, falling back to v4 if the
// time-based generator fails.
func newResourceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
