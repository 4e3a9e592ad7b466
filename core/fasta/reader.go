// Package fasta reads and writes FASTA records over any byte stream.
//
// A record is one header line starting with '>' followed by zero or more
// body lines, which are concatenated without their line breaks. A line
// starting with '>' always opens a new record; it is never sequence data.
package fasta

import (
	"io"

	"seqio/core/iterator"
	"seqio/core/record"
	"seqio/core/seqerr"
	"seqio/core/stream"
)

// Decoder parses FASTA records. The zero value is ready to use.
type Decoder struct{}

// Decode returns the next record from lr, or io.EOF when the input holds no
// further record. Blank lines before a header are skipped; any other text
// before a header is a *seqerr.FormatError.
func (Decoder) Decode(lr *stream.LineReader) (record.Fasta, error) {
	var header []byte
	for {
		line, err := lr.ReadLine()
		if err != nil {
			return record.Fasta{}, err
		}
		if len(line) == 0 {
			continue
		}
		if line[0] != record.FastaMarker {
			return record.Fasta{}, &seqerr.FormatError{
				Path: lr.Name(),
				Line: lr.Line(),
				Msg:  "expected header starting with '>'",
			}
		}
		header = line
		break
	}
	rec := record.Fasta{Header: string(header)}

	var seq []byte
	for {
		next, err := lr.Peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return record.Fasta{}, err
		}
		if len(next) > 0 && next[0] == record.FastaMarker {
			break
		}
		if _, err := lr.ReadLine(); err != nil {
			return record.Fasta{}, err
		}
		seq = append(seq, next...)
	}
	rec.Sequence = string(seq)
	return rec, nil
}

// Reader iterates FASTA records.
type Reader = iterator.Iterator[record.Fasta]

// NewReader iterates records from r. If r is an io.Closer the reader owns it.
func NewReader(r io.Reader, name string) *Reader {
	return iterator.New[record.Fasta](r, name, Decoder{})
}

// Open opens path through stream.Open and iterates its records.
func Open(path string) (*Reader, error) {
	s, err := stream.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(s, path), nil
}
