// Package fastq reads and writes FASTQ records over any byte stream.
//
// Every record is exactly four lines: "@header", sequence, "+separator",
// quality. Multi-line sequence or quality blocks are not supported.
package fastq

import (
	"io"

	"seqio/core/iterator"
	"seqio/core/record"
	"seqio/core/seqerr"
	"seqio/core/stream"
)

const linesPerRecord = 4

// Decoder parses FASTQ records. The zero value is ready to use.
type Decoder struct{}

// Decode reads one record. Blank lines between records are skipped. Text after
// the '+' of the separator is kept as is and not compared to the header. A record
// cut short by the end of input is a *seqerr.TruncatedRecordError; unequal
// sequence and quality lengths are a *seqerr.LengthMismatchError.
func (Decoder) Decode(lr *stream.LineReader) (record.Fastq, error) {
	var header []byte
	for {
		line, err := lr.ReadLine()
		if err != nil {
			return record.Fastq{}, err
		}
		if len(line) > 0 {
			header = line
			break
		}
	}
	start := lr.Line()
	if header[0] != record.FastqMarker {
		return record.Fastq{}, &seqerr.FormatError{
			Path: lr.Name(),
			Line: start,
			Msg:  "expected header starting with '@'",
		}
	}

	var body [linesPerRecord - 1][]byte
	for i := range body {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return record.Fastq{}, &seqerr.TruncatedRecordError{
				Path:   lr.Name(),
				Line:   lr.Line(),
				Header: string(header),
				Got:    i + 1,
				Want:   linesPerRecord,
			}
		}
		if err != nil {
			return record.Fastq{}, err
		}
		body[i] = line
	}
	seq, sep, qual := body[0], body[1], body[2]

	if len(sep) == 0 || sep[0] != record.SeparatorMarker {
		return record.Fastq{}, &seqerr.FormatError{
			Path:   lr.Name(),
			Line:   start + 2,
			Header: string(header),
			Msg:    "expected separator starting with '+'",
		}
	}
	if len(seq) != len(qual) {
		return record.Fastq{}, &seqerr.LengthMismatchError{
			Path:    lr.Name(),
			Line:    start + 3,
			Header:  string(header),
			SeqLen:  len(seq),
			QualLen: len(qual),
		}
	}
	return record.Fastq{
		Header:    string(header),
		Sequence:  string(seq),
		Separator: string(sep),
		Quality:   string(qual),
	}, nil
}

// Reader iterates FASTQ records.
type Reader = iterator.Iterator[record.Fastq]

// NewReader iterates records from r. If r is an io.Closer the reader owns it.
func NewReader(r io.Reader, name string) *Reader {
	return iterator.New[record.Fastq](r, name, Decoder{})
}

// Open opens path through stream.Open and iterates its records.
func Open(path string) (*Reader, error) {
	s, err := stream.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(s, path), nil
}
