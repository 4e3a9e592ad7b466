package stream

import (
	"bufio"
	"errors"
	"io"

	"seqio/core/seqerr"
)

type byteReader interface {
	ReadBytes(delim byte) ([]byte, error)
}

// LineReader splits a byte stream into lines and holds one line of
// lookahead. Record bodies with no length prefix end at the next header,
// which has to be seen without being consumed; the peeked line lives in a
// single slot instead of relying on seeking, which compressed sources lack.
type LineReader struct {
	r    byteReader
	name string

	line  int   // lines consumed
	nread int64 // bytes consumed, including terminators

	peeked  []byte
	peekN   int
	hasPeek bool
	err     error // sticky terminal condition (io.EOF or *seqerr.IOError)
}

// NewLineReader reads lines from r. A *Reader (or any *bufio.Reader) is used
// as is; other sources get a BufferSize buffer. name labels errors.
func NewLineReader(r io.Reader, name string) *LineReader {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReaderSize(r, BufferSize)
	}
	return &LineReader{r: br, name: name}
}

func (lr *LineReader) Name() string     { return lr.name }
func (lr *LineReader) Line() int        { return lr.line }
func (lr *LineReader) BytesRead() int64 { return lr.nread }

// ReadLine returns the next line without its "\n" or "\r\n" terminator.
// A final unterminated line is still a line. io.EOF means no bytes remain.
func (lr *LineReader) ReadLine() ([]byte, error) {
	if !lr.hasPeek {
		if _, err := lr.Peek(); err != nil {
			return nil, err
		}
	}
	line := lr.peeked
	lr.line++
	lr.nread += int64(lr.peekN)
	lr.peeked, lr.peekN, lr.hasPeek = nil, 0, false
	return line, nil
}

// Peek returns the next line without consuming it. Repeated calls return
// the same line until ReadLine is called.
func (lr *LineReader) Peek() ([]byte, error) {
	if lr.hasPeek {
		return lr.peeked, nil
	}
	if lr.err != nil {
		return nil, lr.err
	}
	raw, err := lr.r.ReadBytes('\n')
	if err != nil && err != io.EOF {
		lr.err = lr.wrap(err)
		return nil, lr.err
	}
	if len(raw) == 0 {
		lr.err = io.EOF
		return nil, io.EOF
	}
	lr.peekN = len(raw)
	lr.peeked = trimEOL(raw)
	lr.hasPeek = true
	return lr.peeked, nil
}

func (lr *LineReader) wrap(err error) error {
	var ioe *seqerr.IOError
	if errors.As(err, &ioe) {
		return err
	}
	return &seqerr.IOError{Op: "read", Path: lr.name, Err: err}
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}
