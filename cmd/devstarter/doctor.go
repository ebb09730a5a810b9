package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/devstarter/internal/doctor"
	"github.com/conn-castle/devstarter/internal/messages"
)

var (
	checkInterpreter = doctor.CheckInterpreter
	checkVenvModule  = doctor.CheckVenvModule
	checkLogWritable = doctor.CheckLogWritable
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, messages.DoctorHeader)

			var results []doctor.Result
			interpreter, python := checkInterpreter(runtime.GOOS, a.cfg.Python.Interpreter)
			results = append(results, interpreter)
			if python != "" {
				results = append(results, checkVenvModule(python))
			}
			results = append(results, checkLogWritable(a.logPath))
			results = append(results, doctor.CheckCatalog(a.catalog()))

			for _, r := range results {
				printResult(out, r)
			}
			if doctor.HasFailure(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, r.Recommendation)
	}
}
