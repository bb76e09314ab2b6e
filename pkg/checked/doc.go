// Package checked provides integer arithmetic and narrowing conversions
// with explicit overflow, underflow, and truncation detection. Operations
// classify out-of-range results before a narrowed value is produced; no
// operation ever returns a silently wrapped or silently truncated value.
// Implements: prd002-checked-arithmetic (Add, Sub, Mul, CastNarrow,
//
//	CastFloatToInt, Accumulator, error types);
//	docs/ARCHITECTURE § Core Primitives (Checked Arithmetic).
package checked
