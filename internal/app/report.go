package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seqio/core/fasta"
	"seqio/core/fastq"
	"seqio/core/format"
	"seqio/core/iterator"
	"seqio/core/seqerr"
	"seqio/core/stream"
	"seqio/internal/cli"
	"seqio/internal/cliutil"
	"seqio/internal/cmdutil"
	"seqio/internal/pipeline"
	"seqio/internal/stats"
	"seqio/internal/writers"
	"seqio/pkg/api"
)

func newStatsCommand(e *env) *cobra.Command {
	var o cli.ReportOptions
	cmd := &cobra.Command{
		Use:   "stats [flags] IN...",
		Short: "Report record count, bases, length range and N50 per file",
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return e.runStats(cmd.Context(), o, args)
		}),
	}
	cli.AddReportFlags(cmd.Flags(), &o, "table", writers.StatsFormats())
	return cmd
}

func newValidateCommand(e *env) *cobra.Command {
	var o cli.ReportOptions
	cmd := &cobra.Command{
		Use:   "validate [flags] IN...",
		Short: "Parse every record and report the first error of each file",
		Long: `validate reads each input to the end. A file is valid when every record
parses; otherwise the first error is reported with its line number.
The exit status is 1 when any input is invalid.`,
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return e.runValidate(cmd.Context(), o, args)
		}),
	}
	cli.AddReportFlags(cmd.Flags(), &o, "text", writers.ValidationFormats())
	return cmd
}

type input struct {
	path string
	kind format.Kind
}

func (e *env) resolveInputs(args []string) ([]input, error) {
	paths, err := cliutil.ExpandInputs(args)
	if err != nil {
		return nil, usageError(err)
	}
	ins := make([]input, len(paths))
	for i, p := range paths {
		k, err := e.kindOf(p)
		if err != nil {
			return nil, err
		}
		ins[i] = input{path: p, kind: k}
	}
	return ins, nil
}

// scan reads in to the end, calling fn with the length of every record.
func scan(ctx context.Context, in input, fn func(int)) (int, error) {
	switch in.kind {
	case format.FASTA:
		return scanWith(ctx, in.path, fasta.Open, fn)
	case format.FASTQ:
		return scanWith(ctx, in.path, fastq.Open, fn)
	}
	return 0, fmt.Errorf("%s: %w", in.path, format.ErrUnknownFormat)
}

func scanWith[T interface{ Len() int }](
	ctx context.Context,
	path string,
	open func(string) (*iterator.Iterator[T], error),
	fn func(int),
) (int, error) {
	it, err := open(path)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	return cmdutil.Pump(ctx, it, func(rec T) error {
		fn(rec.Len())
		return nil
	})
}

// forEach runs fn over the inputs concurrently, keyed back to input order.
func forEach[T any](ctx context.Context, e *env, ins []input, fn func(context.Context, input) (T, error)) ([]pipeline.Result[T], error) {
	byPath := make(map[string]input, len(ins))
	paths := make([]string, len(ins))
	for i, in := range ins {
		byPath[in.path] = in
		paths[i] = in.path
	}
	return pipeline.ForEachFile(ctx, pipeline.Config{Threads: e.cfg.Threads}, paths,
		func(ctx context.Context, p string) (T, error) {
			return fn(ctx, byPath[p])
		})
}

func (e *env) runStats(ctx context.Context, o cli.ReportOptions, args []string) error {
	if err := o.Validate(writers.StatsFormats()); err != nil {
		return usageError(err)
	}
	ins, err := e.resolveInputs(args)
	if err != nil {
		return err
	}
	results, err := forEach(ctx, e, ins, func(ctx context.Context, in input) (stats.Summary, error) {
		var acc stats.Accumulator
		if _, err := scan(ctx, in, acc.Add); err != nil {
			return stats.Summary{}, err
		}
		s := acc.Summary()
		s.Path = in.path
		s.Format = in.kind.String()
		s.Compression = stream.CompressionFor(in.path).String()
		if in.path != cliutil.Stdin {
			if fi, err := os.Stat(in.path); err == nil {
				s.SizeBytes = fi.Size()
			}
		}
		e.log.Debug("scanned", "file", in.path, "records", s.Records)
		return s, nil
	})
	if err != nil {
		return err
	}

	var rows []api.StatsV1
	var failed int
	for _, r := range results {
		if r.Err != nil {
			e.log.Error("stats failed", "file", r.Path, "err", r.Err)
			failed++
			continue
		}
		rows = append(rows, writers.ToAPIStats(r.Value))
	}
	if err := e.emit(func(w *bufio.Writer) error { return writers.WriteStats(o.Output, w, rows) }); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be read", failed, len(results))
	}
	return nil
}

func (e *env) runValidate(ctx context.Context, o cli.ReportOptions, args []string) error {
	if err := o.Validate(writers.ValidationFormats()); err != nil {
		return usageError(err)
	}
	ins, err := e.resolveInputs(args)
	if err != nil {
		return err
	}
	results, err := forEach(ctx, e, ins, func(ctx context.Context, in input) (int, error) {
		return scan(ctx, in, func(int) {})
	})
	if err != nil {
		return err
	}

	rows := make([]api.ValidationV1, len(results))
	invalid := 0
	for i, r := range results {
		rows[i] = api.ValidationV1{File: r.Path, Valid: r.Err == nil, Records: r.Value}
		if r.Err != nil {
			invalid++
			rows[i].Error = r.Err.Error()
			rows[i].Line = errorLine(r.Err)
			e.log.Warn("invalid", "file", r.Path, "err", r.Err)
		}
	}
	if err := e.emit(func(w *bufio.Writer) error { return writers.WriteValidation(o.Output, w, rows) }); err != nil {
		return err
	}
	if invalid > 0 {
		return &exitError{code: exitInvalid, err: fmt.Errorf("%d of %d inputs invalid", invalid, len(rows))}
	}
	return nil
}

// errorLine is the 1-based line a parse error points at, or 0.
func errorLine(err error) int {
	var fe *seqerr.FormatError
	var te *seqerr.TruncatedRecordError
	var le *seqerr.LengthMismatchError
	switch {
	case errors.As(err, &fe):
		return fe.Line
	case errors.As(err, &te):
		return te.Line
	case errors.As(err, &le):
		return le.Line
	}
	return 0
}

// emit renders a report to stdout. A reader that went away early is not an
// error.
func (e *env) emit(render func(*bufio.Writer) error) error {
	w := bufio.NewWriter(e.stdout)
	if err := render(w); err != nil {
		return writers.IgnoreBrokenPipe(err)
	}
	return writers.IgnoreBrokenPipe(w.Flush())
}
