package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/config"
	"github.com/conn-castle/devstarter/internal/diaglog"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/provision"
	"github.com/conn-castle/devstarter/internal/shell"
	"github.com/conn-castle/devstarter/internal/terminal"
)

var (
	isTerminal = terminal.IsInteractive
	getwd      = os.Getwd
	// runShellFunc runs the interactive form and progress view.
	runShellFunc = func(cmd *cobra.Command, sh *shell.Shell) (provision.Result, error) {
		return sh.Run(cmd.Context())
	}
	newShellUI = func() shell.UI { return shell.NewHuhUI() }
)

const (
	flagConfig  = "config"
	flagLogFile = "log-file"
	flagDebug   = "debug"
)

// app holds the state shared by every command once flags are parsed.
type app struct {
	configPath string
	logFile    string
	debug      bool

	cfg     *config.Config
	logPath string
	log     *diaglog.File
}

// setup loads the config and opens the diagnostics log. With requireLog
// false, a log that cannot be opened is left for the caller to report.
func (a *app) setup(requireLog bool) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	return a.openLog(requireLog)
}

// loadConfig loads the config file and resolves the log path without
// touching the log.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	path, err := cfg.LogPath(a.logFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logPath = path
	return nil
}

// openLog truncates the log so it only ever holds the current invocation.
func (a *app) openLog(required bool) error {
	level := a.cfg.Log.Level
	if a.debug {
		level = "debug"
	}
	log, err := diaglog.Open(a.logPath, level)
	if err != nil {
		if required {
			return err
		}
		return nil
	}
	a.log = log
	a.logger().Infof(messages.RootLogStartedFmt, versionString())
	return nil
}

// reportFailure points the user at the diagnostics log after a failed run.
func (a *app) reportFailure(out io.Writer) {
	if a.log == nil {
		return
	}
	_, _ = fmt.Fprintf(out, messages.RootSeeLogFmt, a.log.Path())
}

func (a *app) logger() diaglog.Logger {
	if a.log == nil {
		return diaglog.Noop
	}
	return a.log
}

func (a *app) catalog() catalog.Catalog {
	if a.cfg == nil {
		return catalog.Default()
	}
	return a.cfg.Catalog()
}

func (a *app) worker() *provision.Worker {
	cfg := a.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	return provision.NewWorkerFromConfig(cfg, a.logger())
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(true)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, a)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, flagConfig, "", messages.RootFlagConfig)
	flags.StringVar(&a.logFile, flagLogFile, "", messages.RootFlagLogFile)
	flags.BoolVar(&a.debug, flagDebug, false, messages.RootFlagDebug)

	cmd.AddCommand(
		newStartCmd(a),
		newCatalogCmd(a),
		newDoctorCmd(a),
	)
	return cmd
}

// runInteractive opens the setup form. A failed run exits with status 1; the
// error is already on screen.
func runInteractive(cmd *cobra.Command, a *app) error {
	if !isTerminal() {
		return errors.New(messages.RootRequiresTerminal)
	}
	cwd, err := getwd()
	if err != nil {
		return err
	}
	sh := shell.New(shell.Config{
		UI:       newShellUI(),
		Session:  provision.NewSession(a.worker()),
		Catalog:  a.catalog(),
		StartDir: cwd,
		Logger:   a.logger(),
		Out:      cmd.OutOrStdout(),
	})

	res, err := runShellFunc(cmd, sh)
	if errors.Is(err, shell.ErrAborted) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.ShellExitWithoutChanges)
		return nil
	}
	if err != nil {
		return err
	}
	if res.Outcome == provision.OutcomeFailed {
		a.reportFailure(cmd.OutOrStdout())
		return &SilentExitError{Code: 1}
	}
	return nil
}
