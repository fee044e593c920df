package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
)

// DefaultFocusTimeout bounds a single focus command.
const DefaultFocusTimeout = 2 * time.Second

// ErrFocusTimeout is wrapped when a focus command exceeds its deadline.
var ErrFocusTimeout = errors.New("focus command timed out")

// Focuser asks the editor to bring a view to the front.
type Focuser interface {
	Focus(v View, group int) error
}

// CommandFocuser runs an external command per focus request, e.g. the
// editor's own CLI. Arguments may contain the placeholders {id}, {file},
// {name} and {group}.
type CommandFocuser struct {
	Args    []string
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewCommandFocuser splits a command line using shell quoting rules.
func NewCommandFocuser(commandLine string) (*CommandFocuser, error) {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("invalid focus command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("focus command is empty")
	}
	return &CommandFocuser{Args: args, Timeout: DefaultFocusTimeout}, nil
}

// Focus implements Focuser.
func (f *CommandFocuser) Focus(v View, group int) error {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultFocusTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := ExpandArgs(f.Args, v, group)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // G204: command comes from user config
	cmd.Stdout = f.Stdout
	cmd.Stderr = f.Stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w after %s", ErrFocusTimeout, timeout)
		}
		return fmt.Errorf("focus command failed: %w", err)
	}
	return nil
}

// ExpandArgs substitutes view placeholders in each argument. Substitution
// happens after splitting, so values containing spaces stay one argument.
func ExpandArgs(args []string, v View, group int) []string {
	r := strings.NewReplacer(
		"{id}", v.ID(),
		"{file}", v.FileName(),
		"{name}", v.Name(),
		"{group}", strconv.Itoa(group),
	)
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}

// Describe returns the id<TAB>file-or-name line printed for a focused view.
func Describe(v View) string {
	target := v.FileName()
	if target == "" {
		target = v.Name()
	}
	return v.ID() + "\t" + target
}
