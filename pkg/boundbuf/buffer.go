package boundbuf

import "errors"

// Buffer construction and write errors (prd001-bounded-buffer R6).
var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Buffer owns a fixed-capacity byte region. Every write is length-checked
// against the capacity fixed at construction, and the stored payload is
// always followed by a zero terminator inside the region. One byte of the
// region is reserved for the terminator, so the payload never exceeds
// capacity-1 bytes.
// Implements: prd001-bounded-buffer R1, R2.
type Buffer struct {
	storage []byte // exactly capacity bytes, never reallocated
	length  int    // payload bytes; storage[length] is the terminator
}

// New creates a Buffer with the given fixed capacity.
// Returns ErrInvalidCapacity if capacity is not positive.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Buffer{storage: make([]byte, capacity)}, nil
}

// Cap returns the fixed capacity of the backing region.
func (b *Buffer) Cap() int {
	return len(b.storage)
}

// Len returns the current payload length. Always less than Cap.
func (b *Buffer) Len() int {
	return b.length
}

// WriteFrom replaces the payload with at most min(srcLen, Cap()-1) bytes
// copied from src. The payload is always terminated. It never reads more
// than srcLen bytes of src and never writes past Cap() bytes of storage.
// Returns the number of payload bytes copied; a return value smaller than
// srcLen means the input was truncated to fit.
//
// A nil src with srcLen > 0, a negative srcLen, or a srcLen larger than
// len(src) is rejected with ErrInvalidArgument before any mutation.
// Implements: prd001-bounded-buffer R3.
func (b *Buffer) WriteFrom(src []byte, srcLen int) (int, error) {
	if srcLen < 0 {
		return 0, ErrInvalidArgument
	}
	if src == nil && srcLen > 0 {
		return 0, ErrInvalidArgument
	}
	if srcLen > len(src) {
		return 0, ErrInvalidArgument
	}

	n := srcLen
	if limit := len(b.storage) - 1; n > limit {
		n = limit
	}
	copy(b.storage[:n], src[:n])
	b.storage[n] = 0
	b.length = n
	return n, nil
}

// Append copies src after the current payload, truncating to whatever room
// remains below Cap()-1, and re-terminates. Returns the number of bytes
// actually appended. A nil src is rejected with ErrInvalidArgument; an
// empty src leaves the buffer unchanged.
// Implements: prd001-bounded-buffer R3.4.
func (b *Buffer) Append(src []byte) (int, error) {
	if src == nil {
		return 0, ErrInvalidArgument
	}

	room := len(b.storage) - 1 - b.length
	n := len(src)
	if n > room {
		n = room
	}
	copy(b.storage[b.length:b.length+n], src[:n])
	b.length += n
	b.storage[b.length] = 0
	return n, nil
}

// Reset empties the buffer. The capacity is unchanged.
func (b *Buffer) Reset() {
	b.storage[0] = 0
	b.length = 0
}

// View returns a read-only snapshot of the current payload. The payload
// is copied, so the view stays valid and unchanged across later writes
// and resets; no operation on it can extend the buffer.
func (b *Buffer) View() View {
	payload := make([]byte, b.length)
	copy(payload, b.storage[:b.length])
	return View{payload: payload}
}
