// Package config resolves filesystem paths and defaults for the CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const defaultDBPath = "$HOME/.local/share/movimenti/movimenti.db"

// DBPath returns the configured database path with ~ and environment
// variables expanded, falling back to the standard location.
func DBPath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = defaultDBPath
	}
	return ExpandPath(path)
}

// ExpandPath expands ~ and $VAR style environment variables in a path.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
