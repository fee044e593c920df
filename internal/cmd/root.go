package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	groupCore  = "core"
	groupSetup = "setup"
)

var (
	snapshotPath string
	focusCommand string
	configFile   string
)

var rootCmd = &cobra.Command{
	Use:   "opentabs",
	Short: "Quick panel over the open tabs of an editor window",
	Long: `opentabs - jump to any open tab
  - reads the window's tabs from a snapshot (file or stdin)
  - fuzzy-filter by file name and folder, Enter to focus
  - exit code: 0 focused, 1 cancelled, 2 fallback`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyColorMode()
	},
	RunE: runOpenTabs,
}

// Execute runs the root command. Errors are printed to stderr unless they
// carry an empty message.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Message != "" {
		fmt.Fprintf(os.Stderr, "opentabs: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "-", "window snapshot file (YAML or JSON); - reads stdin")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/opentabs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
	rootCmd.Flags().StringVar(&focusCommand, "focus-cmd", "", "command run to focus the picked tab; placeholders {id} {file} {name} {group}")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
