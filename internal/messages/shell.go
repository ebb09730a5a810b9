package messages

// Interactive shell prompts and view text.
const (
	ShellFolderMethodTitle      = "Select target folder"
	ShellFolderMethodType       = "Type a path"
	ShellFolderMethodBrowse     = "Browse"
	ShellFolderInputTitle       = "Target folder"
	ShellFolderPickerTitle      = "Choose the target folder (→ open, ← up, enter select)"
	ShellCategoryTitleFmt       = "%s"
	ShellAdditionalTitle        = "Other"
	ShellAdditionalPlaceholder  = "Enter additional libraries, separated by commas"
	ShellConfirmStartFmt        = "Start setup in %s with %d packages?"
	ShellRequiresTerminal       = "the setup form requires an interactive terminal"
	ShellUnknownFolderMethodFmt = "unknown folder selection %q"

	ShellViewTitleFmt       = "devstarter · %s"
	ShellViewRunIDFmt       = "run %s"
	ShellViewRunning        = "Running"
	ShellViewFinished       = "Finished"
	ShellViewCancelPending  = "Cancel requested; the current install will finish first."
	ShellViewAlreadyRunning = "A setup run is already in progress; cancel it or wait for it to finish."

	ShellExitWithoutChanges = "Exited without starting setup."
	ShellWaitingForInstall  = "Waiting for the current install to finish..."
	ShellLogRunStarted      = "run started from the interactive form"
	ShellLogRunStopped      = "run stopped after the progress view closed"
	ShellStartRunFmt        = "start setup: %w"
	ShellViewFailedFmt      = "progress view: %w"
)
