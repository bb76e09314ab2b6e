// Package boundbuf provides a fixed-capacity byte buffer whose writes are
// always length-checked and whose stored payload is always terminated.
// Implements: prd001-bounded-buffer (Buffer, View, error types);
//
//	docs/ARCHITECTURE § Core Primitives (Bounded Buffer).
package boundbuf
