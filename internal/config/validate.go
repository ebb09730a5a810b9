package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/diaglog"
	"github.com/conn-castle/devstarter/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Layout.VenvDir) == "" {
		return fmt.Errorf(messages.ConfigLayoutVenvDirRequiredFmt, path)
	}
	if strings.TrimSpace(c.Layout.SrcDir) == "" {
		return fmt.Errorf(messages.ConfigLayoutSrcDirRequiredFmt, path)
	}
	if !isSingleElement(c.Layout.VenvDir) {
		return fmt.Errorf(messages.ConfigLayoutDirInvalidFmt, path, "venv_dir", c.Layout.VenvDir)
	}
	if !isSingleElement(c.Layout.SrcDir) {
		return fmt.Errorf(messages.ConfigLayoutDirInvalidFmt, path, "src_dir", c.Layout.SrcDir)
	}
	if c.Layout.VenvDir == c.Layout.SrcDir {
		return fmt.Errorf(messages.ConfigLayoutDirsEqualFmt, path)
	}

	if strings.TrimSpace(c.Log.File) == "" {
		return fmt.Errorf(messages.ConfigLogFileRequiredFmt, path)
	}
	if _, err := diaglog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, path, c.Log.Level)
	}

	if len(c.Categories) > 0 {
		if err := (catalog.Catalog{Categories: c.Categories}).Validate(); err != nil {
			return fmt.Errorf(messages.ConfigCategoriesInvalidFmt, path, err)
		}
	}
	return nil
}

// isSingleElement reports whether name is one relative path element.
func isSingleElement(name string) bool {
	if name == "." || name == ".." || filepath.IsAbs(name) {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
