package messages

// System messages for filesystem and process operations.
const (
	SystemRunCommandFmt       = "run %s: %w"
	SystemRunCommandStderrFmt = "run %s: %w: %s"
	SystemLockOpenFmt         = "open lock %s: %w"
	SystemLockFmt             = "lock %s: %w"
	SystemLockHeldFmt         = "%w: %s"

	InterpreterNotFoundFmt = "no Python interpreter found on PATH (tried %s)"
	InterpreterVersionFmt  = "%s --version: %w"
	VenvInterpreterMissing = "virtual environment interpreter not found at %s"

	DiagLogOpenFmt   = "open diagnostics log %s: %w"
	DiagLogCreateFmt = "create diagnostics log dir %s: %w"
	DiagLogLevelFmt  = "parse diagnostics log level %q: %w"
)
