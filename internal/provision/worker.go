// Package provision runs the setup workflow: validate the target folder,
// create a virtual environment, upgrade pip, create the src folder, and
// install each requested package into the new environment.
package provision

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/conn-castle/devstarter/internal/config"
	"github.com/conn-castle/devstarter/internal/diaglog"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/pyenv"
)

var (
	// ErrInvalidFolder is returned when the target path is missing or not a directory.
	ErrInvalidFolder = errors.New(messages.ProvisionInvalidFolderPath)
	// ErrRunInProgress is returned when a run is started while another is active.
	ErrRunInProgress = errors.New(messages.ProvisionRunInProgress)
	// ErrFolderLocked is returned when another process is provisioning the folder.
	ErrFolderLocked = errors.New(messages.ProvisionFolderLocked)
)

// WorkerConfig configures a Worker.
type WorkerConfig struct {
	System System
	Logger diaglog.Logger
	// GOOS selects interpreter naming; defaults to runtime.GOOS.
	GOOS string
	// Interpreter overrides the host interpreter lookup.
	Interpreter string
	VenvDir     string
	SrcDir      string
}

func (c *WorkerConfig) defaults() {
	if c.System == nil {
		c.System = RealSystem{}
	}
	if c.Logger == nil {
		c.Logger = diaglog.Noop
	}
	if c.GOOS == "" {
		c.GOOS = runtime.GOOS
	}
	if c.VenvDir == "" {
		c.VenvDir = config.DefaultVenvDir
	}
	if c.SrcDir == "" {
		c.SrcDir = config.DefaultSrcDir
	}
	c.Logger = c.Logger.WithValues(diaglog.Kv{"svc": "provision.Worker"})
}

// Worker executes provisioning runs. A Worker holds no per-run state and can
// be reused; Session limits how many runs are active at once.
type Worker struct {
	sys         System
	logger      diaglog.Logger
	goos        string
	interpreter string
	venvDir     string
	srcDir      string
}

// NewWorker returns a Worker with defaults applied to cfg.
func NewWorker(cfg WorkerConfig) *Worker {
	cfg.defaults()
	return &Worker{
		sys:         cfg.System,
		logger:      cfg.Logger,
		goos:        cfg.GOOS,
		interpreter: cfg.Interpreter,
		venvDir:     cfg.VenvDir,
		srcDir:      cfg.SrcDir,
	}
}

// NewWorkerFromConfig builds a Worker from the loaded config file.
func NewWorkerFromConfig(cfg *config.Config, logger diaglog.Logger) *Worker {
	return NewWorker(WorkerConfig{
		Logger:      logger,
		Interpreter: cfg.Python.Interpreter,
		VenvDir:     cfg.Layout.VenvDir,
		SrcDir:      cfg.Layout.SrcDir,
	})
}

// execution is the state of one run.
type execution struct {
	w         *Worker
	req       Request
	progress  *Progress
	logger    diaglog.Logger
	emit      func(Event)
	canceled  func() bool
	installed []string
}

// Execute runs the workflow synchronously, calling emit for every event in
// order. canceled is polled after each package install and nowhere else; an
// install already running always finishes. ctx cancellation is treated the
// same way. Execute never panics; every failure becomes an error event.
func (w *Worker) Execute(ctx context.Context, runID string, req Request, canceled func() bool, emit func(Event)) (res Result) {
	req = req.Normalize()
	if canceled == nil {
		canceled = func() bool { return false }
	}
	if emit == nil {
		emit = func(Event) {}
	}
	ex := &execution{
		w:        w,
		req:      req,
		progress: NewProgress(req.TotalSteps()),
		logger:   w.logger.WithValues(diaglog.Kv{"run": runID, "folder": req.Folder}),
		emit:     emit,
		canceled: func() bool { return canceled() || ctx.Err() != nil },
	}
	res.RunID = runID

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf(messages.ProvisionPanicFmt, r)
			ex.fail(res.Err)
		}
		res.Installed = ex.installed
		res.Percent = ex.progress.Percent()
	}()

	ex.logger.Infof(messages.ProvisionLogRunStart)
	outcome, err := ex.run()
	res.Outcome = outcome
	res.Err = err
	switch outcome {
	case OutcomeFailed:
		ex.fail(err)
	case OutcomeCanceled:
		ex.logger.Infof(messages.ProvisionLogRunCanceled)
		ex.status(messages.ProvisionCanceled)
	default:
		ex.logger.Infof(messages.ProvisionLogRunDone)
		ex.status(messages.ProvisionComplete)
	}
	return res
}

func (ex *execution) run() (Outcome, error) {
	folder, err := ex.validateFolder()
	if err != nil {
		return OutcomeFailed, err
	}

	unlock, err := ex.w.sys.LockFolder(folder)
	if err != nil {
		return OutcomeFailed, err
	}
	defer func() {
		if err := unlock(); err != nil {
			ex.logger.Warningf(messages.ProvisionLogUnlockFailedFmt, err)
		}
	}()
	ex.advance(messages.ProvisionNavigating)

	venvDir := filepath.Join(folder, ex.w.venvDir)
	if err := ex.ensureVenv(folder, venvDir); err != nil {
		return OutcomeFailed, err
	}
	python, err := ex.venvInterpreter(venvDir)
	if err != nil {
		return OutcomeFailed, err
	}

	upgrade := Command{Path: python, Args: []string{"-m", "pip", "install", "--upgrade", "pip"}, Dir: folder}
	if err := ex.runCommand(upgrade); err != nil {
		return OutcomeFailed, fmt.Errorf(messages.ProvisionUpgradePipFmt, err)
	}
	ex.status(messages.ProvisionUpdatingPip)

	srcDir := filepath.Join(folder, ex.w.srcDir)
	if err := ex.w.sys.MkdirAll(srcDir, 0o755); err != nil {
		return OutcomeFailed, fmt.Errorf(messages.ProvisionCreateSrcFmt, srcDir, err)
	}
	ex.status(messages.ProvisionCreatingSrc)

	for _, pkg := range ex.req.Packages() {
		install := Command{Path: python, Args: []string{"-m", "pip", "install", pkg}, Dir: folder}
		if err := ex.runCommand(install); err != nil {
			return OutcomeFailed, fmt.Errorf(messages.ProvisionInstallFmt, pkg, err)
		}
		ex.installed = append(ex.installed, pkg)
		ex.advance(fmt.Sprintf(messages.ProvisionInstallingFmt, pkg))
		if ex.canceled() {
			return OutcomeCanceled, nil
		}
	}
	return OutcomeCompleted, nil
}

// validateFolder resolves the target to an absolute directory path.
func (ex *execution) validateFolder() (string, error) {
	if ex.req.Folder == "" {
		return "", ErrInvalidFolder
	}
	folder, err := ex.w.sys.Abs(ex.req.Folder)
	if err != nil {
		return "", fmt.Errorf(messages.ProvisionResolveFolderFmt, ex.req.Folder, err)
	}
	info, err := ex.w.sys.Stat(folder)
	if err != nil || !info.IsDir() {
		return "", ErrInvalidFolder
	}
	return folder, nil
}

// ensureVenv creates the virtual environment unless the directory exists.
func (ex *execution) ensureVenv(folder, venvDir string) error {
	if _, err := ex.w.sys.Stat(venvDir); err == nil {
		ex.advance(messages.ProvisionVenvExists)
		return nil
	}
	host, err := pyenv.ResolveHost(ex.w.sys.LookPath, ex.w.goos, ex.w.interpreter)
	if err != nil {
		return fmt.Errorf(messages.ProvisionCreateVenvFmt, err)
	}
	create := Command{Path: host, Args: []string{"-m", "venv", venvDir}, Dir: folder}
	if err := ex.runCommand(create); err != nil {
		return fmt.Errorf(messages.ProvisionCreateVenvFmt, err)
	}
	ex.advance(messages.ProvisionCreatingVenv)
	return nil
}

// venvInterpreter returns the environment's own interpreter. Installs run
// through it so packages land in the new environment rather than in the
// environment of whichever interpreter created it.
func (ex *execution) venvInterpreter(venvDir string) (string, error) {
	python := pyenv.VenvInterpreter(venvDir, ex.w.goos)
	if _, err := ex.w.sys.Stat(python); err != nil {
		ex.logger.Debugf(messages.ProvisionLogVenvStatFmt, python, err)
		return "", fmt.Errorf(messages.VenvInterpreterMissing, python)
	}
	return python, nil
}

func (ex *execution) runCommand(cmd Command) error {
	ex.logger.WithValues(diaglog.Kv{"cmd": cmd.String()}).Debugf(messages.ProvisionLogCommand)
	return ex.w.sys.Run(cmd)
}

// advance completes a counted step and reports it.
func (ex *execution) advance(msg string) {
	ex.progress.Advance()
	ex.status(msg)
}

// status reports msg at the current progress.
func (ex *execution) status(msg string) {
	ex.send(EventStatus, msg)
}

func (ex *execution) fail(err error) {
	ex.logger.Errorf(messages.ProvisionLogRunFailed, err)
	ex.send(EventError, err.Error())
}

func (ex *execution) send(kind EventKind, msg string) {
	ex.emit(Event{
		Kind:    kind,
		Message: msg,
		Step:    ex.progress.Completed(),
		Total:   ex.progress.Total(),
		Percent: ex.progress.Percent(),
	})
}
