package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/pyenv"
)

var (
	lookPathFunc = exec.LookPath
	versionFunc  = pyenv.Version
	// venvHelpFunc runs `<python> -m venv --help`, which fails on distributions
	// that ship the venv module separately.
	venvHelpFunc = func(python string) error {
		out, err := exec.Command(python, "-m", "venv", "--help").CombinedOutput()
		if err != nil {
			if msg := strings.TrimSpace(string(out)); msg != "" {
				return fmt.Errorf(messages.DoctorVenvHelpFailedFmt, err, lastLine(msg))
			}
			return err
		}
		return nil
	}
)

// CheckInterpreter looks for the host interpreter used to create environments.
// It returns the interpreter path when one was found.
func CheckInterpreter(goos string, override string) (Result, string) {
	path, err := pyenv.ResolveHost(lookPathFunc, goos, override)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInterpreter,
			Message:        fmt.Sprintf(messages.DoctorInterpreterMissingFmt, strings.Join(pyenv.Candidates(goos, override), ", ")),
			Recommendation: messages.DoctorInterpreterMissingRecommend,
		}, ""
	}
	version, err := versionFunc(path)
	if err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameInterpreter,
			Message:        fmt.Sprintf(messages.DoctorInterpreterVersionFailedFmt, path, err),
			Recommendation: messages.DoctorInterpreterMissingRecommend,
		}, path
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameInterpreter,
		Message:   fmt.Sprintf(messages.DoctorInterpreterFoundFmt, path, version),
	}, path
}

// CheckVenvModule verifies that python can create virtual environments.
func CheckVenvModule(python string) Result {
	if err := venvHelpFunc(python); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameVenvModule,
			Message:        fmt.Sprintf(messages.DoctorVenvModuleMissingFmt, python, err),
			Recommendation: messages.DoctorVenvModuleRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameVenvModule,
		Message:   messages.DoctorVenvModuleOK,
	}
}

// CheckLogWritable verifies that the diagnostics log can be written. The file
// is opened for append so an existing log is left intact.
func CheckLogWritable(path string) Result {
	fail := func(err error) Result {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLog,
			Message:        fmt.Sprintf(messages.DoctorLogNotWritableFmt, path, err),
			Recommendation: messages.DoctorLogNotWritableRecommend,
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fail(err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameLog,
		Message:   fmt.Sprintf(messages.DoctorLogWritableFmt, path),
	}
}

// CheckCatalog validates the package catalog in use.
func CheckCatalog(cat catalog.Catalog) Result {
	if err := cat.Validate(); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameCatalog,
			Message:        err.Error(),
			Recommendation: messages.DoctorCatalogRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameCatalog,
		Message:   fmt.Sprintf(messages.DoctorCatalogSummaryFmt, len(cat.Categories), cat.PackageCount()),
	}
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
