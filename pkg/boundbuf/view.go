package boundbuf

// View is a read-only snapshot of the payload of a Buffer at the moment
// View() was called. The payload is copied at creation, so later writes or
// resets of the buffer never show through, and nothing done through a View
// can extend or alter the underlying payload.
// Implements: prd001-bounded-buffer R4.
type View struct {
	payload []byte // private copy taken at View() time
}

// Len returns the number of payload bytes visible through the view.
func (v View) Len() int {
	return len(v.payload)
}

// Bytes returns a copy of the visible payload. Mutating the returned slice
// does not affect the view or the buffer it came from.
func (v View) Bytes() []byte {
	out := make([]byte, len(v.payload))
	copy(out, v.payload)
	return out
}

// At returns the byte at index i.
// Returns ErrInvalidArgument if i is outside [0, Len()).
func (v View) At(i int) (byte, error) {
	if i < 0 || i >= len(v.payload) {
		return 0, ErrInvalidArgument
	}
	return v.payload[i], nil
}

// String returns the visible payload as a string.
func (v View) String() string {
	return string(v.payload)
}
