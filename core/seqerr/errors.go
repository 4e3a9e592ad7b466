// Package seqerr holds the error types shared by the stream and record codecs.
//
// Callers match them with errors.As. Every parse error carries the stream
// name and the 1-based line number where the fault was detected.
package seqerr

import "fmt"

// IOError is a failure at the OS boundary: open, create, read, write or close.
type IOError struct {
	Op   string // "open", "create", "read", "write", "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports content that does not match the record grammar.
type FormatError struct {
	Path   string
	Line   int
	Header string // partially parsed header, if any
	Msg    string
}

// A FormatError from a bare Encode has no stream, so no location prefix.
func (e *FormatError) Error() string {
	msg := e.Msg
	if e.Header != "" {
		msg = fmt.Sprintf("%s (record %q)", e.Msg, e.Header)
	}
	if e.Path == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
}

// TruncatedRecordError reports end-of-stream in the middle of a record.
type TruncatedRecordError struct {
	Path   string
	Line   int
	Header string
	Got    int // lines read for the record
	Want   int
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: truncated record %q: got %d of %d lines", e.Path, e.Line, e.Header, e.Got, e.Want)
}

// LengthMismatchError reports a FASTQ record whose sequence and quality
// lengths disagree.
type LengthMismatchError struct {
	Path    string
	Line    int
	Header  string
	SeqLen  int
	QualLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s:%d: record %q: sequence length %d != quality length %d",
		e.Path, e.Line, e.Header, e.SeqLen, e.QualLen)
}
