package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/config"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/provision"
)

// notifyContextFunc is replaced in tests to simulate an interrupt.
var notifyContextFunc = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

type startOptions struct {
	folder     string
	selects    []string
	categories []string
	defaults   bool
	extra      string
}

// request builds the run request. Catalog packages keep display order;
// --extra keeps the order typed.
func (o startOptions) request(cat catalog.Catalog) (provision.Request, error) {
	folder := strings.TrimSpace(o.folder)
	if folder == "" {
		return provision.Request{}, errors.New(messages.StartFolderRequired)
	}
	folder, err := config.ExpandPath(folder)
	if err != nil {
		return provision.Request{}, err
	}

	var selected []string
	if o.defaults {
		selected = append(selected, cat.Defaults()...)
	}
	for _, title := range o.categories {
		category, ok := cat.Lookup(title)
		if !ok {
			return provision.Request{}, fmt.Errorf(messages.StartUnknownCategoryFmt, title)
		}
		selected = append(selected, category.Packages...)
	}
	for _, name := range o.selects {
		name = strings.TrimSpace(name)
		if !cat.Offers(name) {
			return provision.Request{}, fmt.Errorf(messages.StartUnknownPackageFmt, name)
		}
		selected = append(selected, name)
	}

	return provision.Request{
		Folder:     folder,
		Selected:   cat.Order(dedupe(selected)),
		Additional: provision.ParseAdditional(o.extra),
	}, nil
}

// dedupe drops repeats introduced by combining --defaults, --category, and
// --select; a catalog package is a single checkbox in the form.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func newStartCmd(a *app) *cobra.Command {
	var opts startOptions
	cmd := &cobra.Command{
		Use:   messages.StartUse,
		Short: messages.StartShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(a.catalog())
			if err != nil {
				return err
			}
			res := runStart(cmd.Context(), cmd.OutOrStdout(), a.worker(), req)
			if res.Outcome == provision.OutcomeFailed {
				a.reportFailure(cmd.OutOrStdout())
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.folder, "folder", "", messages.StartFlagFolder)
	flags.StringArrayVar(&opts.selects, "select", nil, messages.StartFlagSelect)
	flags.StringArrayVar(&opts.categories, "category", nil, messages.StartFlagCategory)
	flags.BoolVar(&opts.defaults, "defaults", false, messages.StartFlagDefaults)
	flags.StringVar(&opts.extra, "extra", "", messages.StartFlagExtra)
	return cmd
}

// runStart streams a run's events to out until the run ends. An interrupt or
// SIGTERM requests cancellation; the install in flight still finishes.
func runStart(ctx context.Context, out io.Writer, starter provision.Starter, req provision.Request) provision.Result {
	r := starter.Start(ctx, req)
	_, _ = fmt.Fprintf(out, messages.StartRunHeaderFmt, r.ID, r.Request.Folder, len(r.Request.Packages()))

	var result provision.Result
	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := notifyContextFunc(ctx)
		defer signalCancel()
		g.Add(
			func() error {
				<-signalCtx.Done()
				return nil
			},
			func(error) {
				signalCancel()
			},
		)
	}

	// Event stream.
	{
		g.Add(
			func() error {
				for e := range r.Events() {
					printEvent(out, e)
				}
				result = r.Wait()
				return nil
			},
			func(error) {
				if !r.Finished() {
					r.Cancel()
					_, _ = fmt.Fprintln(out, color.YellowString(messages.StartInterruptReceived))
				}
			},
		)
	}

	_ = g.Run()
	return result
}

func printEvent(out io.Writer, e provision.Event) {
	if e.Kind == provision.EventError {
		_, _ = fmt.Fprint(out, color.RedString(messages.StartErrorLineFmt, e.Message))
		return
	}
	line := fmt.Sprintf(messages.StartStatusLineFmt, e.Percent, e.Message)
	switch e.Message {
	case messages.ProvisionComplete:
		line = color.GreenString(line)
	case messages.ProvisionCanceled:
		line = color.YellowString(line)
	}
	_, _ = fmt.Fprint(out, line)
}
