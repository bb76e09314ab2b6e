package checked

import (
	"errors"
	"math"
	"unsafe"
)

// Arithmetic boundary errors (prd002-checked-arithmetic R6).
var (
	ErrOverflow    = errors.New("result exceeds the maximum of the target width")
	ErrUnderflow   = errors.New("result falls below the minimum of the target width")
	ErrTruncation  = errors.New("value does not fit the target width")
	ErrInvalidCast = errors.New("value cannot be cast to an integer")
)

// Signed is the set of fixed-width signed integer kinds.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of fixed-width unsigned integer kinds.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integer is the set of all fixed-width integer kinds handled by this
// package. Platform-dependent int/uint/uintptr are deliberately excluded;
// callers pick an explicit width.
type Integer interface {
	Signed | Unsigned
}

// widthOf returns the bit width of T. unsafe.Sizeof on a zero value is a
// compile-time constant; no memory is touched.
func widthOf[T Integer]() uint {
	var z T
	return uint(unsafe.Sizeof(z)) * 8
}

// isSigned reports whether T is a signed kind.
func isSigned[T Integer]() bool {
	return ^T(0) < T(0)
}

// rangeOf returns the representable range of T as (minimum, maximum).
// The minimum is 0 for unsigned kinds.
func rangeOf[T Integer]() (min int64, max uint64) {
	w := widthOf[T]()
	if isSigned[T]() {
		return int64(-1) << (w - 1), uint64(1)<<(w-1) - 1
	}
	if w == 64 {
		return 0, math.MaxUint64
	}
	return 0, uint64(1)<<w - 1
}
