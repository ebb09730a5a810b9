package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/devstarter/internal/messages"
)

// ErrConfigValidation wraps config validation failures (as opposed to TOML
// syntax or filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

var readFileFunc = os.ReadFile

// Load reads the config file at path. An empty path means the default
// location, where a missing file yields the built-in defaults. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else {
		p, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := readFileFunc(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !explicit {
				return Default(), nil
			}
			return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
		}
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses and validates config TOML data on top of the defaults.
// data is the TOML content; source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
		}
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return cfg, nil
}
