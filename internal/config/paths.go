// Package config provides configuration management for opentabs.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for opentabs.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/opentabs)
	ConfigDir string

	// StateDir is the directory for logs and other state (~/.local/state/opentabs)
	StateDir string

	// RuntimeDir is the directory for the panel lock file
	RuntimeDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir:  filepath.Join(appData, "opentabs"),
			StateDir:   filepath.Join(localAppData, "opentabs"),
			RuntimeDir: filepath.Join(localAppData, "opentabs", "run"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join(stateHome, "opentabs", "run")
	} else {
		runtimeDir = filepath.Join(runtimeDir, "opentabs")
	}

	return &Paths{
		ConfigDir:  filepath.Join(configHome, "opentabs"),
		StateDir:   filepath.Join(stateHome, "opentabs"),
		RuntimeDir: runtimeDir,
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// LogFile returns the path to the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.StateDir, "opentabs.log")
}

// LockFile returns the path of the lock held while a panel is open.
func (p *Paths) LockFile() string {
	return filepath.Join(p.RuntimeDir, "panel.lock")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.StateDir, p.RuntimeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
