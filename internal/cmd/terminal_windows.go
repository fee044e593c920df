//go:build windows

package cmd

import (
	"errors"
	"os"
)

const ttyPath = "CONIN$"

func checkTTY() error {
	return errors.New("interactive panel is not supported on Windows")
}

func checkTERM() error { return nil }

func checkTermWidth(*os.File) error { return nil }

func acquireLock(string) (int, error) { return -1, nil }

func releaseLock(int) {}
