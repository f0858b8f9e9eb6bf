// Package paths resolves where clseek keeps its own files: the user config
// below $XDG_CONFIG_HOME, and the log file and sync locks below
// $XDG_STATE_HOME.
//
// The XDG variables are read on every call rather than once at start up, so
// tests and wrappers can point them elsewhere with t.Setenv.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/clseek/pkg/errors"
)

const (
	// AppName names the clseek directory inside each XDG base directory
	AppName = "clseek"

	ConfigFileName = "config.toml"
	LogFileName    = "clseek.log"
	LocksDirName   = "locks"

	EnvHome       = "HOME"
	EnvConfigHome = "XDG_CONFIG_HOME"
	EnvStateHome  = "XDG_STATE_HOME"
)

// baseDir prefers the live environment over the value xdg cached at init
func baseDir(env, cached string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return cached
}

// ConfigDir returns $XDG_CONFIG_HOME/clseek
func ConfigDir() string {
	return filepath.Join(baseDir(EnvConfigHome, xdg.ConfigHome), AppName)
}

// ConfigFile returns the user config file read when none is named
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns $XDG_STATE_HOME/clseek
func StateDir() string {
	return filepath.Join(baseDir(EnvStateHome, xdg.StateHome), AppName)
}

// LogFilePath returns the append-only log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// LockDir holds one lock file per sync destination
func LockDir() string {
	return filepath.Join(StateDir(), LocksDirName)
}

// HomeDirectory returns the user's home directory, falling back to $HOME
func HomeDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrap(err, errors.ErrNotFound, "failed to get home directory")
	}
	return home, nil
}

// ExpandHome replaces a leading "~" or "~/" with the home directory. Other
// forms, such as "~user", are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path
	}
	home, err := HomeDirectory()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
