package app

import (
	"context"
	"io"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"

	"seqio/core/fasta"
	"seqio/core/fastq"
	"seqio/core/format"
	"seqio/core/iterator"
	"seqio/core/record"
	"seqio/core/stream"
	"seqio/internal/cli"
	"seqio/internal/cliutil"
	"seqio/internal/cmdutil"
)

// sink is the write half shared by fasta.Writer and fastq.Writer.
type sink[T any] interface {
	Write(T) error
	Count() int
	Close() error
}

func newCatCommand(e *env) *cobra.Command {
	var o cli.CopyOptions
	cmd := &cobra.Command{
		Use:   "cat [flags] IN...",
		Short: "Concatenate records into one output, re-framing by extension",
		Example: `  seqio cat -o all.fq.gz lane1.fq lane2.fq.zst
  zcat reads.fq.gz | seqio cat --format fastq - -o reads.fq.zst`,
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return e.runCopy(cmd.Context(), o, args, false)
		}),
	}
	cli.AddCopyFlags(cmd.Flags(), &o)
	return cmd
}

func newFq2faCommand(e *env) *cobra.Command {
	var o cli.CopyOptions
	cmd := &cobra.Command{
		Use:   "fq2fa [flags] IN...",
		Short: "Convert FASTQ records to FASTA, dropping qualities",
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return e.runCopy(cmd.Context(), o, args, true)
		}),
	}
	cli.AddCopyFlags(cmd.Flags(), &o)
	return cmd
}

func (e *env) runCopy(ctx context.Context, o cli.CopyOptions, args []string, toFasta bool) error {
	if err := o.Validate(); err != nil {
		return usageError(err)
	}
	inputs, err := cliutil.ExpandInputs(args)
	if err != nil {
		return usageError(err)
	}
	in, err := e.commonKind(inputs)
	if err != nil {
		return err
	}
	out := in
	if toFasta {
		if in != format.FASTQ {
			return usageErrorf("fq2fa needs FASTQ input, got %s", in)
		}
		out = format.FASTA
	}
	if o.Out != cliutil.Stdin {
		if k, err := format.Detect(o.Out); err == nil && k != out {
			if toFasta {
				return usageErrorf("%s: fq2fa writes FASTA, not %s", o.Out, k)
			}
			return usageErrorf("%s: cat does not convert %s to %s (see fq2fa)", o.Out, in, k)
		}
		if err := refuseOverwrite(o.Out, inputs); err != nil {
			return err
		}
	}

	dst, err := e.createStream(o.Out)
	if err != nil {
		return err
	}

	var n int
	var nbytes int64
	switch {
	case in == format.FASTA:
		w := fasta.NewWriter(dst, o.Out)
		n, nbytes, err = copyAll(ctx, inputs, fasta.Open, identity[record.Fasta], w)
	case toFasta:
		w := fasta.NewWriter(dst, o.Out)
		n, nbytes, err = copyAll(ctx, inputs, fastq.Open, record.Fastq.ToFasta, w)
	default:
		w := fastq.NewWriter(dst, o.Out)
		n, nbytes, err = copyAll(ctx, inputs, fastq.Open, identity[record.Fastq], w)
	}
	if err != nil {
		return err
	}
	e.log.Info("copied", "records", n, "read", bytefmt.ByteSize(uint64(nbytes)), "out", o.Out)
	return nil
}

// commonKind requires every input to resolve to the same record format.
func (e *env) commonKind(inputs []string) (format.Kind, error) {
	var kind format.Kind
	for i, p := range inputs {
		k, err := e.kindOf(p)
		if err != nil {
			return format.Unknown, err
		}
		if i > 0 && k != kind {
			return format.Unknown, usageErrorf("%s is %s but %s is %s", inputs[0], kind, p, k)
		}
		kind = k
	}
	return kind, nil
}

// createStream opens the output. Standard output is flushed on Close but
// never closed, so later writes by the caller still work.
func (e *env) createStream(path string) (*stream.Writer, error) {
	if path == cliutil.Stdin {
		return stream.NewWriterLevel(struct{ io.Writer }{e.stdout}, path, stream.None, e.cfg.CompressionLevel)
	}
	return stream.CreateLevel(path, e.cfg.CompressionLevel)
}

// refuseOverwrite fails when out already exists as one of the inputs.
// Creating it would truncate that input before a single record is read.
func refuseOverwrite(out string, inputs []string) error {
	ofi, err := os.Stat(out)
	if err != nil {
		return nil
	}
	for _, p := range inputs {
		if p == cliutil.Stdin {
			continue
		}
		if ifi, err := os.Stat(p); err == nil && os.SameFile(ofi, ifi) {
			return usageErrorf("output %s is also input %s", out, p)
		}
	}
	return nil
}

func identity[T any](v T) T { return v }

// copyAll streams every input through conv into w, one input at a time in
// argument order, and always closes w. It returns the number of records
// written and the bytes consumed from the (decompressed) inputs.
func copyAll[In, Out any](
	ctx context.Context,
	inputs []string,
	open func(string) (*iterator.Iterator[In], error),
	conv func(In) Out,
	w sink[Out],
) (n int, nbytes int64, err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
		n = w.Count()
	}()
	for _, p := range inputs {
		read, err := copyOne(ctx, p, open, conv, w)
		nbytes += read
		if err != nil {
			return 0, nbytes, err
		}
	}
	return 0, nbytes, nil
}

func copyOne[In, Out any](
	ctx context.Context,
	path string,
	open func(string) (*iterator.Iterator[In], error),
	conv func(In) Out,
	w sink[Out],
) (int64, error) {
	it, err := open(path)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	_, err = cmdutil.Pump(ctx, it, func(rec In) error {
		return w.Write(conv(rec))
	})
	return it.BytesRead(), err
}
