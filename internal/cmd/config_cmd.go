package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/opentabs/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set opentabs configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/opentabs/config.yaml (XDG compliant).
OPENTABS_CONFIG or --config point at another file.

Keys are top-level (truncation_*) or in the format: section.key
Sections: focus, panel, log

Examples:
  opentabs config                              # List all keys
  opentabs config truncation_line_length 40    # Longer folder column
  opentabs config focus.command "subl --command 'focus_view {id}'"`,
	GroupID: groupSetup,
	Args:    cobra.MaximumNArgs(2),
	RunE:    runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cmd, cfg, path)
	case 1:
		return getConfig(cmd, cfg, args[0])
	case 2:
		return setConfig(cmd, cfg, path, args[0], args[1])
	}

	return nil
}

func listConfig(cmd *cobra.Command, cfg *config.Config, path string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	var failedKeys []string
	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}

		fmt.Fprintf(out, "  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Fprintf(out, "\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failedKeys, ", "))
	}

	fmt.Fprintln(out)
	if cfg.TruncationDefaulted {
		fmt.Fprintf(out, "%sTruncation settings are defaulted.%s\n", colorYellow, colorReset)
	}
	fmt.Fprintf(out, "Config file: %s\n", path)

	return nil
}

func getConfig(cmd *cobra.Command, cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if value == "" {
		fmt.Fprintf(out, "%s(not set)%s\n", colorDim, colorReset)
	} else {
		fmt.Fprintln(out, value)
	}

	return nil
}

func setConfig(cmd *cobra.Command, cfg *config.Config, path, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.SaveToFile(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s%s%s = %s\n", colorCyan, key, colorReset, value)
	fmt.Fprintf(out, "Saved to: %s\n", filepath.Clean(path))

	return nil
}
