package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/devstarter/internal/messages"
)

var homeDirFunc = homedir.Dir

// DefaultPath returns ~/.config/devstarter/config.toml.
func DefaultPath() (string, error) {
	home, err := homeDirFunc()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}
	return filepath.Join(home, ".config", "devstarter", "config.toml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	return expanded, nil
}

// LogPath returns the diagnostics log path with ~ expanded. override wins over
// log.file when set.
func (c *Config) LogPath(override string) (string, error) {
	path := c.Log.File
	if override != "" {
		path = override
	}
	return ExpandPath(path)
}
