// Package iterator drives a record decoder over a byte stream.
//
// An Iterator is lazy, single-pass and not restartable. It moves from Active
// to one of two terminal states: Exhausted, after a clean end of input, or
// Failed, after the first decode or read error. There is no attempt to
// resynchronize on the next record boundary after a failure.
package iterator

import (
	"io"
	"iter"

	"seqio/core/stream"
)

// State is the iterator's position in its lifecycle.
type State int

const (
	Active State = iota
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Decoder parses one record from lr. It returns io.EOF, and nothing else,
// when the input ends cleanly before a new record starts.
type Decoder[T any] interface {
	Decode(lr *stream.LineReader) (T, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc[T any] func(lr *stream.LineReader) (T, error)

func (f DecoderFunc[T]) Decode(lr *stream.LineReader) (T, error) { return f(lr) }

// Iterator yields records of type T from one owned stream.
type Iterator[T any] struct {
	lr    *stream.LineReader
	src   io.Closer
	dec   Decoder[T]
	state State
	err   error
	n     int
}

// New wraps src. If src is an io.Closer, the iterator owns it and Close
// releases it. name labels errors.
func New[T any](src io.Reader, name string, dec Decoder[T]) *Iterator[T] {
	it := &Iterator[T]{lr: stream.NewLineReader(src, name), dec: dec}
	if c, ok := src.(io.Closer); ok {
		it.src = c
	}
	return it
}

// Next returns the next record. At the end of input it returns io.EOF, and
// keeps doing so. After a failure it keeps returning that failure.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	switch it.state {
	case Exhausted:
		return zero, io.EOF
	case Failed:
		return zero, it.err
	}
	rec, err := it.dec.Decode(it.lr)
	if err != nil {
		if err == io.EOF {
			it.state = Exhausted
			return zero, io.EOF
		}
		it.state, it.err = Failed, err
		return zero, err
	}
	it.n++
	return rec, nil
}

// All ranges over the remaining records. A failure is yielded once as the
// final pair; a clean end yields nothing more.
func (it *Iterator[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			rec, err := it.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

func (it *Iterator[T]) State() State { return it.state }

// Err is the retained failure; nil unless State is Failed.
func (it *Iterator[T]) Err() error { return it.err }

// Count is the number of records produced so far.
func (it *Iterator[T]) Count() int { return it.n }

// Line is the number of input lines consumed so far.
func (it *Iterator[T]) Line() int { return it.lr.Line() }

// BytesRead is the number of decoded bytes consumed so far.
func (it *Iterator[T]) BytesRead() int64 { return it.lr.BytesRead() }

// Close releases the underlying stream. Closing an Active iterator leaves it
// Exhausted.
func (it *Iterator[T]) Close() error {
	if it.state == Active {
		it.state = Exhausted
	}
	if it.src == nil {
		return nil
	}
	src := it.src
	it.src = nil
	return src.Close()
}
