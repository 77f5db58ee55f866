package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mspctlVersion is set at build time via
// -ldflags "-X main.mspctlVersion=x.y.z".
var mspctlVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the mspctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mspctl version %s\n", mspctlVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
