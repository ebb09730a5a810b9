// Package config loads the optional devstarter TOML config file.
package config

import "github.com/conn-castle/devstarter/internal/catalog"

// Built-in defaults used when the config file or a key is absent.
const (
	DefaultVenvDir = "venv"
	DefaultSrcDir  = "src"
	DefaultLogFile = "setup.log"
)

// Config is the parsed config file.
type Config struct {
	Python     PythonConfig       `toml:"python"`
	Layout     LayoutConfig       `toml:"layout"`
	Log        LogConfig          `toml:"log"`
	Categories []catalog.Category `toml:"categories,omitempty"`
}

// PythonConfig selects the host interpreter used to create environments.
type PythonConfig struct {
	// Interpreter overrides the python3/python PATH lookup when set.
	Interpreter string `toml:"interpreter"`
}

// LayoutConfig names the directories created under the target folder.
type LayoutConfig struct {
	VenvDir string `toml:"venv_dir"`
	SrcDir  string `toml:"src_dir"`
}

// LogConfig configures the diagnostics log.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{VenvDir: DefaultVenvDir, SrcDir: DefaultSrcDir},
		Log:    LogConfig{File: DefaultLogFile, Level: "error"},
	}
}

// Catalog returns the configured categories, or the built-in catalog when the
// file does not define any.
func (c *Config) Catalog() catalog.Catalog {
	if len(c.Categories) == 0 {
		return catalog.Default()
	}
	return catalog.Catalog{Categories: c.Categories}
}
