// Package commands holds the CLI subcommands. Each command is built
// with NewXxxCmd(flags) and registered on the root cli.Command.
package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tactilehq/dotwin/internal/core/config"
	"github.com/tactilehq/dotwin/internal/core/translate"
)

// Flags carries global flag values plus the state assembled in the
// root Before hook, shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config

	// Registry holds the discovered translation tables.
	Registry *translate.Registry
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dotwin", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's
// state directory.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "dotwin", "dotwin.log")
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "dotwin", "dotwin.log")
	}
	return filepath.Join(home, ".local", "state", "dotwin", "dotwin.log")
}
