package cmd

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// ANSI color codes for terminal output.
// These are initialized in init() and may be disabled on certain platforms.
var (
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// colorMode is set by the --color flag: auto, always, or never.
var colorMode = "auto"

func init() {
	if shouldDisableColors() {
		disableColors()
	}
}

func enableColors() {
	colorYellow = "\033[0;33m"
	colorCyan = "\033[0;36m"
	colorDim = "\033[2m"
	colorBold = "\033[1m"
	colorReset = "\033[0m"
}

func disableColors() {
	colorYellow = ""
	colorCyan = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
}

// applyColorMode honours --color after flags are parsed.
func applyColorMode() {
	switch colorMode {
	case "always":
		enableColors()
	case "never":
		disableColors()
	default:
		if shouldDisableColors() {
			disableColors()
		} else {
			enableColors()
		}
	}
}

func shouldDisableColors() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return true
	}

	if os.Getenv("TERM") == "dumb" {
		return true
	}

	if !isTerminal(os.Stdout) {
		return true
	}

	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" {
			return false // Windows Terminal supports ANSI
		}
		if os.Getenv("TERM_PROGRAM") != "" {
			return false
		}
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return false
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
