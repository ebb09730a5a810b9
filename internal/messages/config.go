package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigReadFileFmt         = "read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"
	ConfigExpandPathFmt       = "expand path %q: %w"
	ConfigResolveHomeFmt      = "resolve home dir: %w"
	ConfigValidationGuidance  = "(fix the config file or remove it to use the built-in defaults)"

	ConfigLayoutVenvDirRequiredFmt = "%s: layout.venv_dir is required"
	ConfigLayoutSrcDirRequiredFmt  = "%s: layout.src_dir is required"
	ConfigLayoutDirInvalidFmt      = "%s: layout.%s %q must be a single relative path element"
	ConfigLayoutDirsEqualFmt       = "%s: layout.venv_dir and layout.src_dir must differ"
	ConfigLogFileRequiredFmt       = "%s: log.file is required"
	ConfigLogLevelInvalidFmt       = "%s: log.level %q is invalid (allowed: panic, fatal, error, warn, info, debug, trace)"
	ConfigCategoriesInvalidFmt     = "%s: %w"
)
