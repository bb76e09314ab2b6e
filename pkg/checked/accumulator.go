package checked

import "sync"

// Accumulator is a shared integer value guarded by a single mutex and
// updated only through checked arithmetic. The critical section is one
// arithmetic update; the lock is never held across a blocking call. A
// rejected update leaves the value untouched.
// Implements: prd002-checked-arithmetic R7.
type Accumulator[T Integer] struct {
	mu    sync.Mutex
	value T
}

// NewAccumulator creates an Accumulator holding initial.
func NewAccumulator[T Integer](initial T) *Accumulator[T] {
	return &Accumulator[T]{value: initial}
}

// Add applies a checked addition of delta and returns the new value.
// On ErrOverflow/ErrUnderflow the stored value is unchanged and the old
// value is returned alongside the error.
func (a *Accumulator[T]) Add(delta T) (T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next, err := Add(a.value, delta)
	if err != nil {
		return a.value, err
	}
	a.value = next
	return next, nil
}

// Sub applies a checked subtraction of delta, with the same contract as Add.
func (a *Accumulator[T]) Sub(delta T) (T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next, err := Sub(a.value, delta)
	if err != nil {
		return a.value, err
	}
	a.value = next
	return next, nil
}

// Value returns a coherent snapshot of the current value.
func (a *Accumulator[T]) Value() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}
