// Package shell is the interactive front end: a huh form collects the target
// folder and packages, and a bubbletea view streams the run's events.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/diaglog"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/provision"
	"github.com/conn-castle/devstarter/internal/terminal"
)

var runProgramFunc = func(ctx context.Context, m tea.Model, out io.Writer) (tea.Model, error) {
	return tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithFilter(viewFilter),
	).Run()
}

// Config configures a Shell.
type Config struct {
	UI      UI
	Session *provision.Session
	Catalog catalog.Catalog
	// StartDir seeds the folder prompt and the directory browser.
	StartDir string
	Logger   diaglog.Logger
	Out      io.Writer
}

func (c *Config) defaults() {
	if c.UI == nil {
		c.UI = NewHuhUI()
	}
	if c.Logger == nil {
		c.Logger = diaglog.Noop
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.StartDir == "" {
		if wd, err := os.Getwd(); err == nil {
			c.StartDir = wd
		}
	}
	c.Logger = c.Logger.WithValues(diaglog.Kv{"svc": "shell.Shell"})
}

// Shell alternates between the form and the progress view until the user quits.
type Shell struct {
	ui       UI
	session  *provision.Session
	catalog  catalog.Catalog
	startDir string
	logger   diaglog.Logger
	out      io.Writer
}

// New returns a Shell. cfg.Session is required.
func New(cfg Config) *Shell {
	cfg.defaults()
	return &Shell{
		ui:       cfg.UI,
		session:  cfg.Session,
		catalog:  cfg.Catalog,
		startDir: cfg.StartDir,
		logger:   cfg.Logger,
		out:      cfg.Out,
	}
}

// Run shows the form, starts the run, and displays it. Pressing r after a run
// finishes shows the form again prefilled with the previous answers. Leaving
// the form returns ErrAborted; the last run's result is returned otherwise.
func (s *Shell) Run(ctx context.Context) (provision.Result, error) {
	defaults := initialDefaults(s.catalog)
	var last provision.Result
	for {
		req, err := Collect(s.ui, s.catalog, s.startDir, defaults)
		if err != nil {
			if isAbort(err) {
				return last, ErrAborted
			}
			return last, err
		}
		defaults = defaultsFromRequest(req)

		run, err := s.session.Start(ctx, req)
		if err != nil {
			return last, fmt.Errorf(messages.ShellStartRunFmt, err)
		}
		s.logger.WithValues(diaglog.Kv{"run": run.ID}).Debugf(messages.ShellLogRunStarted)

		final, err := runProgramFunc(ctx, newModel(run, terminal.Width(os.Stdout)), s.out)
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return s.stop(run), fmt.Errorf(messages.ShellViewFailedFmt, err)
		}
		m, ok := final.(model)
		if !ok || !m.finished {
			// The view closed before the run did: stop after the current
			// install and report what the run ended with.
			return s.stop(run), nil
		}
		last = m.result
		if !m.restart {
			return last, nil
		}
	}
}

// stop cancels run, waits for the install in flight, and returns the result.
func (s *Shell) stop(run *provision.Run) provision.Result {
	run.Cancel()
	_, _ = fmt.Fprintln(s.out, messages.ShellWaitingForInstall)
	res := run.Wait()
	s.logger.WithValues(diaglog.Kv{"run": run.ID, "outcome": res.Outcome.String()}).Debugf(messages.ShellLogRunStopped)
	return res
}
