// Package sigcount provides a counter that is safe to increment from an
// asynchronous signal-handler context and safe to observe from normal
// control flow. Increment is one atomic add: no allocation, no locks, no
// non-reentrant calls, and no operation in this package ever blocks.
//
// The package never registers signal handlers. Callers wire Increment
// into their own handler and keep any observation or diagnostic output in
// normal flow, which polls Snapshot and may then do unrestricted work.
// Implements: prd004-signal-counter; docs/ARCHITECTURE § Core Primitives
//
//	(Signal-Safe Counter).
package sigcount

import "sync/atomic"

// Counter is a single 64-bit atomic cell. The zero value is ready to use
// and holds zero. A Counter must not be copied after first use.
type Counter struct {
	value atomic.Uint64
}

// Increment adds one to the counter. Safe from an asynchronous signal or
// interrupt context: the store has release ordering, so a Snapshot that
// observes the new value also observes everything written before the
// increment.
func (c *Counter) Increment() {
	c.value.Add(1)
}

// Add adds n to the counter under the same contract as Increment.
func (c *Counter) Add(n uint64) {
	c.value.Add(n)
}

// Snapshot returns a coherent value of the counter. The load has acquire
// ordering paired with Increment's release store; the returned value is
// never torn and never misses an increment that completed before the call.
func (c *Counter) Snapshot() uint64 {
	return c.value.Load()
}

// Reset re-zeroes the counter for reuse between runs. Normal-flow only;
// a reset racing an asynchronous increment may discard that increment.
func (c *Counter) Reset() {
	c.value.Store(0)
}
