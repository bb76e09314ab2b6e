// Runs command for the grip CLI: list recorded runs from the ledger.
// Implements: prd006-grip-cli R2.3; prd005-run-ledger R2.3.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/handrail/internal/ledger"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var runs []ledger.Run
		err := withLedger(func(l *ledger.Ledger) error {
			var err error
			runs, err = l.List(flagRunsLimit)
			return err
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "runs:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(runs)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tCOMPONENT\tOPS\tFAILURES\tDURATION\tNOTES")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
				r.StartedAt.Format(time.RFC3339), r.Component,
				r.Operations, r.Failures, r.Duration, r.Notes)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "maximum runs to list (0 for all)")
}
