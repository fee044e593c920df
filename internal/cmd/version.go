package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print version information",
	GroupID: groupSetup,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "opentabs %s\n", Version)
		fmt.Fprintf(out, "  commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  built:  %s\n", BuildDate)
	},
}
