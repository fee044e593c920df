//go:build !windows

package cmd

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// minTermWidth is the narrowest terminal the panel renders in.
const minTermWidth = 20

// ttyPath is the controlling terminal the panel draws on.
const ttyPath = "/dev/tty"

// errLocked is returned when another panel holds the lock.
var errLocked = errors.New("another instance of opentabs is running")

// checkTTY verifies that the controlling terminal is openable.
func checkTTY() error {
	f, err := os.Open(ttyPath)
	if err != nil {
		return fmt.Errorf("no TTY available: %w", err)
	}
	f.Close()
	return nil
}

// checkTERM verifies that the TERM environment variable is not "dumb".
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	return nil
}

// checkTermWidth verifies that f is at least minTermWidth columns wide.
func checkTermWidth(f *os.File) error {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	if ws.Col < minTermWidth {
		return fmt.Errorf("terminal too narrow (%d columns, need at least %d)", ws.Col, minTermWidth)
	}
	return nil
}

// acquireLock takes an advisory flock on path. The returned descriptor stays
// open until releaseLock.
func acquireLock(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0o600)
	if err != nil {
		return -1, fmt.Errorf("cannot open lock file: %w", err)
	}

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		unix.Close(fd)
		return -1, errLocked
	}

	return fd, nil
}

// releaseLock releases the advisory file lock.
func releaseLock(fd int) {
	if fd >= 0 {
		_ = unix.Flock(fd, unix.LOCK_UN)
		_ = unix.Close(fd)
	}
}
