package messages

// Provisioning status and error messages.
//
// The status strings are shown verbatim in the log view, so they keep the
// wording users of the original setup window already know.
const (
	ProvisionInvalidFolderPath = "Invalid folder path"
	ProvisionRunInProgress     = "a setup run is already in progress"
	ProvisionFolderLocked      = "another devstarter process is provisioning this folder"

	ProvisionNavigating      = "Navigating to folder..."
	ProvisionCreatingVenv    = "Creating virtual environment..."
	ProvisionVenvExists      = "Virtual environment already exists."
	ProvisionUpdatingPip     = "Updating pip..."
	ProvisionCreatingSrc     = "Creating src folder..."
	ProvisionInstallingFmt   = "Installing %s..."
	ProvisionCanceled        = "Setup canceled."
	ProvisionComplete        = "Setup complete!"
	ProvisionErrorDisplayFmt = "Error: %s"
	ProvisionPanicFmt        = "internal error: %v"

	ProvisionResolveFolderFmt = "resolve folder %s: %w"
	ProvisionCreateVenvFmt    = "create virtual environment: %w"
	ProvisionUpgradePipFmt    = "upgrade pip: %w"
	ProvisionCreateSrcFmt     = "create %s: %w"
	ProvisionInstallFmt       = "install %s: %w"

	ProvisionLogRunStart        = "setup run started"
	ProvisionLogRunFailed       = "Error in setup process: %v"
	ProvisionLogRunCanceled     = "setup run canceled"
	ProvisionLogRunDone         = "setup run complete"
	ProvisionLogCommand         = "running command"
	ProvisionLogUnlockFailedFmt = "release folder lock: %v"
	ProvisionLogVenvStatFmt     = "venv interpreter %s: %v"
)
