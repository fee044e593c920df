// Package main is the entry point for the opentabs CLI.
package main

import (
	"os"

	"github.com/runger/opentabs/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
