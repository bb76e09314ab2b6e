// Stress commands for the grip CLI: hammer the signal-safe counter and the
// guarded resource and verify their invariants hold.
// Implements: prd006-grip-cli R4.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/handrail/internal/ledger"
	"github.com/mesh-intelligence/handrail/pkg/guard"
	"github.com/mesh-intelligence/handrail/pkg/sigcount"
)

var (
	flagStressHandlers int
	flagStressWorkers  int
	flagStressOps      int
	flagStressRounds   int
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Stress a primitive and verify its invariants",
}

func init() {
	stressCmd.PersistentFlags().IntVar(&flagStressWorkers, "workers", 0, "concurrent workers (default from config)")
	stressCmd.PersistentFlags().IntVar(&flagStressOps, "ops", 0, "operations per worker (default from config)")

	stressCounterCmd.Flags().IntVar(&flagStressHandlers, "handlers", 0, "self-delivered SIGUSR1 increments (default from config)")
	stressGuardCmd.Flags().IntVar(&flagStressRounds, "rounds", 100, "fresh resources to race over")

	stressCmd.AddCommand(stressCounterCmd)
	stressCmd.AddCommand(stressGuardCmd)
}

// stressResult is the printed outcome of a stress run.
type stressResult struct {
	Component  string `json:"component"`
	Operations uint64 `json:"operations"`
	Failures   uint64 `json:"failures"`
	DurationMs int64  `json:"duration_ms"`
	Notes      string `json:"notes"`
}

var stressCounterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Increment a counter from a signal handler and worker goroutines",
	Long: `Installs a SIGUSR1 handler that increments a signal-safe counter,
self-delivers a number of signals while worker goroutines increment from
normal flow, and verifies the final snapshot equals the exact total. A
lost increment is an invariant failure and exits nonzero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlers := intFlagOr(flagStressHandlers, stressDefaults.handlers)
		workers := intFlagOr(flagStressWorkers, stressDefaults.workers)
		ops := intFlagOr(flagStressOps, stressDefaults.ops)

		start := time.Now()
		total, lost, err := stressCounter(handlers, workers, ops)
		if err != nil {
			fmt.Fprintln(os.Stderr, "stress counter:", err)
			os.Exit(exitSysError)
		}

		res := stressResult{
			Component:  "counter",
			Operations: total,
			Failures:   lost,
			DurationMs: time.Since(start).Milliseconds(),
			Notes:      fmt.Sprintf("handlers=%d workers=%d ops=%d", handlers, workers, ops),
		}
		recordRun(ledger.Run{
			Component:  res.Component,
			Operations: res.Operations,
			Failures:   res.Failures,
			Duration:   time.Since(start),
			StartedAt:  start.UTC(),
			Notes:      res.Notes,
		})
		return reportStress(res)
	},
}

var stressGuardCmd = &cobra.Command{
	Use:   "guard",
	Short: "Race Release and With on guarded resources",
	Long: `Creates fresh guarded resources and races concurrent Release and
With calls against each. A resource whose underlying release runs more
than once, or an operation that touches a freed handle, is an invariant
failure and exits nonzero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workers := intFlagOr(flagStressWorkers, stressDefaults.workers)
		rounds := flagStressRounds

		start := time.Now()
		total, failures := stressGuard(rounds, workers)

		res := stressResult{
			Component:  "guard",
			Operations: total,
			Failures:   failures,
			DurationMs: time.Since(start).Milliseconds(),
			Notes:      fmt.Sprintf("rounds=%d workers=%d", rounds, workers),
		}
		recordRun(ledger.Run{
			Component:  res.Component,
			Operations: res.Operations,
			Failures:   res.Failures,
			Duration:   time.Since(start),
			StartedAt:  start.UTC(),
			Notes:      res.Notes,
		})
		return reportStress(res)
	},
}

// stressCounter returns the total increments performed and how many the
// final snapshot lost. The handler path and the worker path run
// concurrently; the only signal-context work is Counter.Increment.
func stressCounter(handlers, workers, ops int) (total, lost uint64, err error) {
	var c sigcount.Counter
	var delivered atomic.Int64

	sigCh := make(chan os.Signal, handlers)
	signal.Notify(sigCh, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	handled := make(chan struct{})
	go func() {
		defer close(handled)
		for range handlers {
			<-sigCh
			c.Increment()
			delivered.Add(1)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range ops {
				c.Increment()
			}
		}()
	}

	self, err := os.FindProcess(os.Getpid())
	if err != nil {
		return 0, 0, fmt.Errorf("finding own process: %w", err)
	}
	for i := int64(1); i <= int64(handlers); i++ {
		if err := self.Signal(syscall.SIGUSR1); err != nil {
			return 0, 0, fmt.Errorf("delivering SIGUSR1: %w", err)
		}
		// The kernel coalesces an undelivered SIGUSR1 with a pending
		// one; wait for the handler before sending the next.
		for delivered.Load() < i {
			runtime.Gosched()
		}
	}

	wg.Wait()
	<-handled

	total = uint64(handlers) + uint64(workers)*uint64(ops)
	snap := c.Snapshot()
	if snap < total {
		lost = total - snap
	}
	return total, lost, nil
}

// stressGuard races Release and With over fresh resources and counts
// double frees and accesses to freed handles as failures.
func stressGuard(rounds, workers int) (total, failures uint64) {
	for range rounds {
		var frees atomic.Int64
		var freed atomic.Bool
		var badAccesses atomic.Uint64

		res, err := guard.Acquire(struct{}{}, func(struct{}) error {
			frees.Add(1)
			freed.Store(true)
			return nil
		})
		if err != nil {
			failures++
			continue
		}

		var wg sync.WaitGroup
		wg.Add(workers * 2)
		for range workers {
			go func() {
				defer wg.Done()
				_ = res.Release()
			}()
			go func() {
				defer wg.Done()
				// Either the operation runs against a live handle
				// or it is rejected; a freed handle observed inside
				// the operation is an invariant failure.
				_ = res.With(func(struct{}) error {
					if freed.Load() {
						badAccesses.Add(1)
					}
					return nil
				})
			}()
		}
		wg.Wait()

		total += uint64(workers * 2)
		failures += badAccesses.Load()
		if frees.Load() != 1 {
			failures++
		}
	}
	return total, failures
}

// reportStress prints the result and exits nonzero on invariant failures.
func reportStress(res stressResult) error {
	if flagJSON {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Printf("%s: %d operations, %d failures in %dms (%s)\n",
			res.Component, res.Operations, res.Failures, res.DurationMs, res.Notes)
	}
	if res.Failures > 0 {
		os.Exit(exitUserError)
	}
	return nil
}

// intFlagOr returns the flag value when set, otherwise the fallback.
func intFlagOr(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}
