package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check that a Python interpreter and the diagnostics log are usable"

	DoctorHeader = "Checking devstarter prerequisites...\n"

	DoctorCheckNameInterpreter = "Interpreter"
	DoctorCheckNameVenvModule  = "VenvModule"
	DoctorCheckNameLog         = "DiagnosticsLog"
	DoctorCheckNameCatalog     = "Catalog"

	DoctorInterpreterMissingFmt       = "No Python interpreter found on PATH (tried %s)"
	DoctorInterpreterMissingRecommend = "Install Python 3 or set python.interpreter in the config file."
	DoctorInterpreterFoundFmt         = "%s (%s)"
	DoctorInterpreterVersionFailedFmt = "%s found but `--version` failed: %v"
	DoctorVenvModuleMissingFmt        = "%s cannot run the venv module: %v"
	DoctorVenvModuleRecommend         = "Install the venv module for your Python (for example the python3-venv package)."
	DoctorVenvModuleOK                = "venv module available"
	DoctorVenvHelpFailedFmt           = "%w: %s"
	DoctorLogNotWritableFmt           = "Cannot write %s: %v"
	DoctorLogNotWritableRecommend     = "Choose a writable path with --log-file or log.file."
	DoctorLogWritableFmt              = "Writable: %s"
	DoctorCatalogSummaryFmt           = "%d categories, %d packages"
	DoctorCatalogRecommend            = "Fix the [[categories]] entries in the config file."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-15s %s\n"
	DoctorRecommendationPrefix = "       ↳ "
	DoctorSuccessSummary       = "All checks passed."
	DoctorFailureSummary       = "Some checks failed."
	DoctorFailureError         = "doctor checks failed"
)
