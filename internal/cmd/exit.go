package cmd

import (
	"errors"
	"fmt"
)

// Exit codes of the interactive command.
// These match the expectations of editor integrations and shell scripts:
//
//	0 = a tab was focused
//	1 = cancelled by user
//	2 = fallback (no TTY, no tabs, error)
const (
	ExitFocused   = 0
	ExitCancelled = 1
	ExitFallback  = 2
)

// ExitError is an error that carries a specific exit code.
// cobra.RunE returns this so the caller can set the process exit code.
type ExitError struct {
	Message string
	Code    int
}

func (e *ExitError) Error() string {
	return e.Message
}

func fallbackError(format string, args ...any) error {
	return &ExitError{Code: ExitFallback, Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitFocused
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFallback
}
