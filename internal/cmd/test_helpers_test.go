package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runger/opentabs/internal/config"
	"github.com/runger/opentabs/internal/panel"
)

const testSnapshot = `folder: /proj
active: a
groups:
  - views:
      - id: a
        file: /proj/src/a.py
      - id: u
        name: Untitled-1
`

// testEnv isolates config, state and log paths in a temp dir and returns
// the config file path.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(dir, "run"))
	for _, k := range []string{
		"OPENTABS_TRUNCATION_LINE_LENGTH",
		"OPENTABS_TRUNCATION_PREVIEW_LENGTH",
		"OPENTABS_FOCUS_COMMAND",
		"OPENTABS_DEBUG",
		"OPENTABS_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	t.Setenv("OPENTABS_CONFIG", cfgPath)
	return cfgPath
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writeSettings(t *testing.T, cfgPath string) {
	t.Helper()
	content := "truncation_line_length: 30\ntruncation_preview_length: 15\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// scriptedPanel replays highlights and a final select against the request.
// With leaveOpen set it returns without closing, like an interrupted program.
type scriptedPanel struct {
	highlights []int
	selectIdx  int
	leaveOpen  bool
	err        error
	shown      int
	closed     bool
	req        panel.Request
}

func (u *scriptedPanel) Show(req panel.Request) error {
	u.shown++
	u.req = req
	if u.err != nil {
		return u.err
	}
	if req.OnHighlight != nil {
		for _, h := range u.highlights {
			req.OnHighlight(h)
		}
	}
	if u.leaveOpen {
		return nil
	}
	req.OnSelect(u.selectIdx)
	u.closed = true
	return nil
}

func (u *scriptedPanel) Result() (int, bool) {
	return u.selectIdx, u.closed && u.selectIdx != panel.NoSelection
}

func (u *scriptedPanel) IsCancelled() bool {
	return u.closed && u.selectIdx == panel.NoSelection
}

func withPanel(t *testing.T, ui quickPanel, openErr error) {
	t.Helper()
	old := openPanel
	openPanel = func(*config.Config) (quickPanel, func(), error) {
		if openErr != nil {
			return nil, nil, openErr
		}
		return ui, func() {}, nil
	}
	t.Cleanup(func() { openPanel = old })
}
