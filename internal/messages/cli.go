package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "devstarter"
	// RootShort is the short description for the root command.
	RootShort = "Provision a Python project folder with a virtual environment and packages"
	RootLong  = "Run without a subcommand to open the interactive setup form. Use `devstarter start` for non-interactive runs."

	RootFlagConfig  = "Path to the devstarter config file (default ~/.config/devstarter/config.toml)"
	RootFlagLogFile = "Path to the diagnostics log file (overrides log.file; truncated at startup)"
	RootFlagDebug   = "Write debug records to the diagnostics log"

	RootLogStartedFmt    = "devstarter %s started"
	RootSeeLogFmt        = "Details: %s\n"
	RootRequiresTerminal = "the interactive setup form requires an interactive terminal; use `devstarter start --folder DIR` instead"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// StartUse is the start command name.
	StartUse   = "start"
	StartShort = "Provision a folder without the interactive form"

	StartFlagFolder   = "Target folder (must already exist)"
	StartFlagSelect   = "Catalog package to install (repeatable)"
	StartFlagCategory = "Install every package of a catalog category (repeatable)"
	StartFlagDefaults = "Include the catalog's default-checked packages"
	StartFlagExtra    = "Additional packages, comma-separated"

	StartFolderRequired     = "--folder is required"
	StartUnknownPackageFmt  = "%q is not a catalog package; pass it with --extra instead"
	StartUnknownCategoryFmt = "unknown catalog category %q"
	StartStatusLineFmt      = "[%3d%%] %s\n"
	StartErrorLineFmt       = "Error: %s\n"
	StartRunHeaderFmt       = "Run %s: provisioning %s (%d packages)\n"
	StartInterruptReceived  = "Interrupt received; stopping after the current install finishes."

	// CatalogUse is the catalog command name.
	CatalogUse   = "catalog"
	CatalogShort = "List the preset package categories"

	CatalogFlagFormat        = "Output format: text, toml, or yaml"
	CatalogUnknownFormatFmt  = "unknown catalog format %q (supported: text, toml, yaml)"
	CatalogCategoryHeaderFmt = "%s\n"
	CatalogEntryFmt          = "  [%s] %s\n"
	CatalogCheckedMark       = "x"
	CatalogUncheckedMark     = " "
)
