// Package app wires flags, config, the simulator and the report into the
// qverify command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"github.com/theapemachine/qverify"
)

// Process exit codes.
const (
	ExitPass  = 0
	ExitFail  = 1
	ExitError = 2
)

// Run executes the command with args (without the program name) and returns
// the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), args, stdout, stderr, nil)
}

/*
RunContext is Run with an explicit context and executor. A nil executor
gets the local simulator configured from flags.
*/
func RunContext(ctx context.Context, args []string, stdout, stderr io.Writer, executor qverify.Executor) int {
	fs := pflag.NewFlagSet("qverify", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: qverify [flags]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Runs an entangling circuit and checks every outcome is all zeros or all ones.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	qverify.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitPass
		}
		return ExitError
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return ExitError
	}

	cfg, err := qverify.LoadConfig(fs)
	if err != nil {
		qverify.RenderError(stderr, err)
		return ExitError
	}

	logger := qverify.NewLogger(stderr, cfg.Debug)

	if executor == nil {
		executor = qverify.NewSimulator(cfg.Seed, qverify.WithReadoutError(cfg.ReadoutError))
	}

	diagnosis, err := qverify.NewRunner(executor, cfg, logger).Diagnose(ctx)
	if err != nil {
		qverify.RenderError(stderr, err)
		return ExitError
	}

	if err := qverify.Render(stdout, cfg.Format, diagnosis); err != nil {
		qverify.RenderError(stderr, err)
		return ExitError
	}

	return ExitCode(diagnosis, nil)
}

// ExitCode maps a run outcome onto the process exit contract.
func ExitCode(d *qverify.Diagnosis, err error) int {
	switch {
	case err != nil, d == nil:
		return ExitError
	case d.Passed():
		return ExitPass
	default:
		return ExitFail
	}
}
