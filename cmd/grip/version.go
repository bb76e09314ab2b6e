// Version command for the grip CLI.
// Implements: prd006-grip-cli R2.2.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/handrail/pkg/handrail"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the grip version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("grip", handrail.Version)
	},
}
