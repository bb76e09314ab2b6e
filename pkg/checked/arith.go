package checked

import (
	"math"
	"math/bits"
)

// Add returns a+b, or ErrOverflow/ErrUnderflow when the true sum is not
// representable in T. Widths up to 32 bits compute in a 64-bit
// intermediate; 64-bit operands are classified with carry detection
// (unsigned) or limit pre-checks (signed) before any narrowing happens.
// Implements: prd002-checked-arithmetic R1.
func Add[T Integer](a, b T) (T, error) {
	min, max := rangeOf[T]()

	if isSigned[T]() {
		if widthOf[T]() < 64 {
			return narrowSigned[T](int64(a)+int64(b), min, max)
		}
		x, y := int64(a), int64(b)
		if y > 0 && x > math.MaxInt64-y {
			return 0, ErrOverflow
		}
		if y < 0 && x < math.MinInt64-y {
			return 0, ErrUnderflow
		}
		return T(x + y), nil
	}

	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > max {
		return 0, ErrOverflow
	}
	return T(sum), nil
}

// Sub returns a-b, or ErrOverflow/ErrUnderflow when the true difference is
// not representable in T. For unsigned kinds any negative result is an
// underflow.
// Implements: prd002-checked-arithmetic R2.
func Sub[T Integer](a, b T) (T, error) {
	min, max := rangeOf[T]()

	if isSigned[T]() {
		if widthOf[T]() < 64 {
			return narrowSigned[T](int64(a)-int64(b), min, max)
		}
		x, y := int64(a), int64(b)
		if y < 0 && x > math.MaxInt64+y {
			return 0, ErrOverflow
		}
		if y > 0 && x < math.MinInt64+y {
			return 0, ErrUnderflow
		}
		return T(x - y), nil
	}

	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		return 0, ErrUnderflow
	}
	return T(diff), nil
}

// Mul returns a*b, or ErrOverflow/ErrUnderflow when the true product is
// not representable in T. 64-bit magnitudes are checked with the
// double-width product from math/bits.
// Implements: prd002-checked-arithmetic R3.
func Mul[T Integer](a, b T) (T, error) {
	min, max := rangeOf[T]()

	if isSigned[T]() {
		if widthOf[T]() < 64 {
			return narrowSigned[T](int64(a)*int64(b), min, max)
		}
		return mulSigned64[T](int64(a), int64(b))
	}

	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > max {
		return 0, ErrOverflow
	}
	return T(lo), nil
}

// narrowSigned classifies a 64-bit intermediate against the target range
// and narrows it only when in range.
func narrowSigned[T Integer](wide, min int64, max uint64) (T, error) {
	if wide > int64(max) {
		return 0, ErrOverflow
	}
	if wide < min {
		return 0, ErrUnderflow
	}
	return T(wide), nil
}

// mulSigned64 multiplies two int64 values by magnitude so the double-width
// unsigned product from math/bits can detect out-of-range results without
// ever computing a wrapped signed product.
func mulSigned64[T Integer](x, y int64) (T, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	negative := (x < 0) != (y < 0)

	hi, lo := bits.Mul64(magnitude(x), magnitude(y))
	if hi != 0 {
		return mulRangeError[T](negative)
	}
	if negative {
		// |MinInt64| is representable as a negative product.
		if lo > uint64(1)<<63 {
			return 0, ErrUnderflow
		}
		return T(-int64(lo-1) - 1), nil
	}
	if lo > uint64(math.MaxInt64) {
		return 0, ErrOverflow
	}
	return T(int64(lo)), nil
}

func mulRangeError[T Integer](negative bool) (T, error) {
	if negative {
		return 0, ErrUnderflow
	}
	return 0, ErrOverflow
}

// magnitude returns |v| as a uint64. Defined for MinInt64 as well, where
// the signed negation would not be representable.
func magnitude(v int64) uint64 {
	if v < 0 {
		return -uint64(v)
	}
	return uint64(v)
}
