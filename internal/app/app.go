// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seqio/core/format"
	"seqio/internal/cli"
	"seqio/internal/cmdutil"
	"seqio/internal/config"
	"seqio/internal/writers"
)

const (
	exitOK       = 0
	exitInvalid  = 1
	exitUsage    = 2
	exitRuntime  = 3
	exitCanceled = 130
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: exitUsage, err: err} }

func usageErrorf(format string, a ...any) error {
	return usageError(fmt.Errorf(format, a...))
}

// env is the state shared by every subcommand of one invocation.
type env struct {
	stdout io.Writer
	stderr io.Writer
	global cli.GlobalOptions
	cfg    config.Config
	log    *log.Logger
}

func newRootCommand(e *env) *cobra.Command {
	root := cli.NewRootCommand("seqio", &e.global)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(viper.New(), cmd.Flags(), e.global.ConfigFile)
		if err != nil {
			return usageError(err)
		}
		lg, err := cmdutil.NewLogger(e.stderr, cfg.LogLevel, cfg.Quiet)
		if err != nil {
			return usageError(err)
		}
		e.cfg, e.log = cfg, lg
		return nil
	}
	root.AddCommand(
		newCatCommand(e),
		newFq2faCommand(e),
		newStatsCommand(e),
		newValidateCommand(e),
	)
	return root
}

// runE wraps a subcommand body so that any error without an explicit
// exit code counts as a runtime failure.
func runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		var ee *exitError
		if err == nil || errors.As(err, &ee) {
			return err
		}
		return &exitError{code: exitRuntime, err: err}
	}
}

// kindOf resolves the record format of path: --format wins, otherwise the
// file name decides.
func (e *env) kindOf(path string) (format.Kind, error) {
	if k := e.cfg.FormatKind(); k != format.Unknown {
		return k, nil
	}
	k, err := format.Detect(path)
	if err != nil {
		return format.Unknown, usageErrorf("%s: %w (set --format)", path, err)
	}
	return k, nil
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	if writers.IsBrokenPipe(err) {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(stderr, "seqio: interrupted")
		return exitCanceled
	}
	code := exitUsage // errors cobra raises itself (unknown command, bad args)
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	if code == exitInvalid {
		// the report already says what failed
		return code
	}
	_, _ = fmt.Fprintf(stderr, "seqio: %v\n", err)
	if code == exitUsage {
		_, _ = fmt.Fprintln(stderr, "Run 'seqio --help' for usage.")
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	e := &env{stdout: stdout, stderr: stderr}
	root := newRootCommand(e)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.ExecuteContext(parent), stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
