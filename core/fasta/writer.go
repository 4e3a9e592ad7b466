package fasta

import (
	"bufio"
	"io"

	"seqio/core/record"
	"seqio/core/seqerr"
	"seqio/core/stream"
)

// Encode writes rec as "header\nsequence\n". The sequence is not wrapped.
// An invalid record is refused before anything is written.
func Encode(w io.Writer, rec record.Fasta) error {
	if err := rec.Validate(); err != nil {
		return &seqerr.FormatError{Header: rec.Header, Msg: err.Error()}
	}
	if sw, ok := w.(io.StringWriter); ok {
		for _, s := range [...]string{rec.Header, "\n", rec.Sequence, "\n"} {
			if _, err := sw.WriteString(s); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := io.WriteString(w, rec.Header+"\n"+rec.Sequence+"\n")
	return err
}

// Writer serializes FASTA records to a stream it owns.
type Writer struct {
	f    io.WriteCloser
	w    *bufio.Writer
	name string
	n    int
}

// NewWriter writes to f. A *stream.Writer is used without another buffer.
func NewWriter(f io.WriteCloser, name string) *Writer {
	w := &Writer{f: f, name: name}
	if sw, ok := f.(*stream.Writer); ok {
		w.w = sw.Writer
	} else {
		w.w = bufio.NewWriterSize(f, stream.BufferSize)
	}
	return w
}

// Create opens path through stream.Create, truncating any existing file.
func Create(path string) (*Writer, error) {
	return CreateLevel(path, stream.DefaultLevel)
}

// CreateLevel is Create with an explicit compression level.
func CreateLevel(path string, level int) (*Writer, error) {
	s, err := stream.CreateLevel(path, level)
	if err != nil {
		return nil, err
	}
	return NewWriter(s, path), nil
}

// Write serializes one record.
func (w *Writer) Write(rec record.Fasta) error {
	if err := Encode(w.w, rec); err != nil {
		if fe, ok := err.(*seqerr.FormatError); ok {
			fe.Path, fe.Line = w.name, 2*w.n+1
			return fe
		}
		return &seqerr.IOError{Op: "write", Path: w.name, Err: err}
	}
	w.n++
	return nil
}

// Count is the number of records written.
func (w *Writer) Count() int { return w.n }

func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return &seqerr.IOError{Op: "write", Path: w.name, Err: err}
	}
	return nil
}

// Close flushes pending records and closes the underlying stream.
func (w *Writer) Close() error {
	ferr := w.Flush()
	cerr := w.f.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}
