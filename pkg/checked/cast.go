package checked

import (
	"fmt"
	"math"
)

// TruncationError reports a narrowing conversion whose source value does
// not fit the target width. It carries both the original value and the
// value a silent narrowing would have produced, for diagnostics. It wraps
// ErrTruncation, so errors.Is(err, ErrTruncation) matches.
// Implements: prd002-checked-arithmetic R4.2.
type TruncationError struct {
	Original  string // decimal rendering of the source value
	Truncated string // decimal rendering of the silently narrowed value
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("truncation: %s does not fit the target width (would narrow to %s)", e.Original, e.Truncated)
}

func (e *TruncationError) Unwrap() error {
	return ErrTruncation
}

// CastNarrow converts v to the target width To, returning a
// *TruncationError when v falls outside To's representable range. The
// conversion never silently narrows; the error carries the original value
// and the would-be narrowed value.
// Implements: prd002-checked-arithmetic R4.
func CastNarrow[To, From Integer](v From) (To, error) {
	_, toMax := rangeOf[To]()

	if v < From(0) {
		toMin, _ := rangeOf[To]()
		if !isSigned[To]() || int64(v) < toMin {
			return 0, truncationError[To](v)
		}
		return To(v), nil
	}
	if uint64(v) > toMax {
		return 0, truncationError[To](v)
	}
	return To(v), nil
}

func truncationError[To, From Integer](v From) error {
	return &TruncationError{
		Original:  fmt.Sprintf("%d", v),
		Truncated: fmt.Sprintf("%d", To(v)),
	}
}

// CastFloatToInt converts a float64 to the integer width T. NaN and the
// infinities fail with ErrInvalidCast. Finite values are rounded half away
// from zero and then saturated: values beyond T's range clamp to the
// nearest bound rather than wrapping. Saturation is a success, so callers
// that must distinguish a clamped result compare against the bounds.
// Implements: prd002-checked-arithmetic R5.
func CastFloatToInt[T Integer](f float64) (T, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidCast
	}

	r := math.Round(f)
	w := widthOf[T]()

	min, max := rangeOf[T]()

	if isSigned[T]() {
		// 2^(w-1) is exact in float64 for every width here.
		limit := math.Ldexp(1, int(w-1))
		if r >= limit {
			return T(max), nil
		}
		if r < -limit {
			return T(min), nil
		}
		return T(r), nil
	}

	limit := math.Ldexp(1, int(w))
	if r >= limit {
		return T(max), nil
	}
	if r < 0 {
		return 0, nil
	}
	return T(r), nil
}
