// Package stream opens buffered, optionally compressed byte streams.
//
// The framing is chosen from the path's final extension only: ".gz" selects
// gzip, ".zst" selects zstd, anything else is plain. "-" is stdin for reading
// and stdout for writing, always plain.
package stream

import (
	"bufio"
	"io"
	"os"

	"seqio/core/seqerr"
)

// BufferSize sits between the raw file and the caller on both sides.
const BufferSize = 128 * 1024

// Reader is the read side of a byte stream. It owns the file and the
// decompressor; Close releases both.
type Reader struct {
	*bufio.Reader
	path    string
	comp    Compression
	closers []io.Closer
	closed  bool
}

// Open opens path for reading. Failure to open the file is an *seqerr.IOError.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return &Reader{Reader: bufio.NewReaderSize(os.Stdin, BufferSize), path: path}, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, &seqerr.IOError{Op: "open", Path: path, Err: err}
	}
	comp := CompressionFor(path)
	if comp == None {
		return &Reader{
			Reader:  bufio.NewReaderSize(fh, BufferSize),
			path:    path,
			closers: []io.Closer{fh},
		}, nil
	}
	dec := &lazyDecoder{src: fh, comp: comp}
	return &Reader{
		Reader:  bufio.NewReaderSize(dec, BufferSize),
		path:    path,
		comp:    comp,
		closers: []io.Closer{dec, fh},
	}, nil
}

// NewReader wraps an already open source. comp selects the decompressor.
func NewReader(r io.Reader, name string, comp Compression) *Reader {
	var src io.Reader = r
	var closers []io.Closer
	if comp != None {
		dec := &lazyDecoder{src: r, comp: comp}
		src = dec
		closers = append(closers, dec)
	}
	if c, ok := r.(io.Closer); ok {
		closers = append(closers, c)
	}
	return &Reader{Reader: bufio.NewReaderSize(src, BufferSize), path: name, comp: comp, closers: closers}
}

func (r *Reader) Path() string             { return r.path }
func (r *Reader) Compression() Compression { return r.comp }

// Close closes the decompressor and the file, returning the first error.
// Closing twice is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return &seqerr.IOError{Op: "close", Path: r.path, Err: err}
	}
	return nil
}

// Writer is the write side of a byte stream. Close must be called: it
// flushes the buffer, writes the compressor's trailer and closes the file.
// A writer that is never closed leaves a truncated archive behind.
type Writer struct {
	*bufio.Writer
	path   string
	comp   Compression
	enc    io.WriteCloser
	f      io.Closer
	closed bool
}

// Create creates (or truncates) path for writing at the default level.
func Create(path string) (*Writer, error) {
	return CreateLevel(path, DefaultLevel)
}

// CreateLevel is Create with an explicit compression level. The level is
// ignored for plain paths.
func CreateLevel(path string, level int) (*Writer, error) {
	if path == "-" {
		return &Writer{Writer: bufio.NewWriterSize(os.Stdout, BufferSize), path: path}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, &seqerr.IOError{Op: "create", Path: path, Err: err}
	}
	w, err := NewWriterLevel(fh, path, CompressionFor(path), level)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return w, nil
}

// NewWriterLevel wraps an already open sink. If w is an io.Closer, Close
// closes it after the compressor.
func NewWriterLevel(w io.Writer, name string, comp Compression, level int) (*Writer, error) {
	enc, err := newEncoder(w, comp, level)
	if err != nil {
		return nil, &seqerr.IOError{Op: "create", Path: name, Err: err}
	}
	out := &Writer{path: name, comp: comp, enc: enc}
	if c, ok := w.(io.Closer); ok {
		out.f = c
	}
	if enc != nil {
		out.Writer = bufio.NewWriterSize(enc, BufferSize)
	} else {
		out.Writer = bufio.NewWriterSize(w, BufferSize)
	}
	return out, nil
}

func (w *Writer) Path() string             { return w.path }
func (w *Writer) Compression() Compression { return w.comp }

// Close flushes and releases the stream. Every step is attempted even if an
// earlier one failed; the first error is returned.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.Writer.Flush()
	if w.enc != nil {
		if cerr := w.enc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if w.f != nil {
		if cerr := w.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return &seqerr.IOError{Op: "close", Path: w.path, Err: err}
	}
	return nil
}
