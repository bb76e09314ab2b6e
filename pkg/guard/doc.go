// Package guard models exclusive ownership of an externally-acquired
// resource handle. A guarded resource is released exactly once, rejects
// every access after release before the handle is touched, and supports
// ownership transfer that invalidates the prior holder.
// Implements: prd003-guarded-resource (Resource, Do, error types);
//
//	docs/ARCHITECTURE § Core Primitives (Guarded Resource).
package guard
