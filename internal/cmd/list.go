package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runger/opentabs/internal/host"
	"github.com/runger/opentabs/internal/panel"
	"github.com/runger/opentabs/internal/tabs"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the panel rows without opening the panel",
	Long: `Print one line per open tab, tab-separated: label, details, annotation.

Formats:
  plain   details as text (default)
  markup  details with <u> and <strong> emphasis tags

Examples:
  opentabs list --snapshot window.yaml
  editor-export | opentabs list --format markup`,
	GroupID: groupCore,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "plain", "output format: plain or markup")
}

func runList(cmd *cobra.Command, args []string) error {
	if listFormat != "plain" && listFormat != "markup" {
		return fmt.Errorf("--format must be \"plain\" or \"markup\" (got %q)", listFormat)
	}

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if notice := cfg.Notice(cfgPath); notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}

	snap, err := host.ReadSnapshot(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	window := host.NewSnapshotWindow(snap, nil)

	classifier := tabs.Classifier{Separator: window.Separator()}
	rows := panel.Project(classifier.Classify(window), settingsFrom(cfg))
	writeRows(cmd.OutOrStdout(), rows, listFormat)
	return nil
}

func writeRows(w io.Writer, rows []panel.Row, format string) {
	for _, r := range rows {
		details := r.DetailText()
		if format == "markup" {
			details = r.DetailMarkup()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Label, details, r.Annotation)
	}
}
