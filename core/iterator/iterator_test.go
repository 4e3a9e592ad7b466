package iterator

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"seqio/core/stream"
)

var errBad = errors.New("bad line")

// lines yields one record per line and fails on a line reading "bad".
var lines = DecoderFunc[string](func(lr *stream.LineReader) (string, error) {
	l, err := lr.ReadLine()
	if err != nil {
		return "", err
	}
	if string(l) == "bad" {
		return "", errBad
	}
	return string(l), nil
})

type trackingCloser struct {
	io.Reader
	closed int
}

func (c *trackingCloser) Close() error { c.closed++; return nil }

func TestExhaustionIsIdempotent(t *testing.T) {
	it := New[string](strings.NewReader("a\nb\n"), "mem", lines)
	require.Equal(t, Active, it.State())

	for _, want := range []string{"a", "b"} {
		got, err := it.Next()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	for i := 0; i < 3; i++ {
		_, err := it.Next()
		require.Equal(t, io.EOF, err)
		require.Equal(t, Exhausted, it.State())
		require.NoError(t, it.Err())
	}
	require.Equal(t, 2, it.Count())
	require.Equal(t, 2, it.Line())
}

func TestEmptyInputExhaustsImmediately(t *testing.T) {
	it := New[string](strings.NewReader(""), "mem", lines)
	_, err := it.Next()
	require.Equal(t, io.EOF, err)
	require.Equal(t, Exhausted, it.State())
	require.Zero(t, it.Count())
}

func TestFailureIsSticky(t *testing.T) {
	it := New[string](strings.NewReader("a\nbad\nc\n"), "mem", lines)
	_, err := it.Next()
	require.NoError(t, err)

	_, err = it.Next()
	require.ErrorIs(t, err, errBad)
	require.Equal(t, Failed, it.State())

	// No resynchronization: "c" is never produced.
	for i := 0; i < 2; i++ {
		_, err = it.Next()
		require.ErrorIs(t, err, errBad)
	}
	require.ErrorIs(t, it.Err(), errBad)
	require.Equal(t, 1, it.Count())
}

func TestAllStopsAfterError(t *testing.T) {
	it := New[string](strings.NewReader("a\nb\nbad\nc\n"), "mem", lines)
	var got []string
	var last error
	for rec, err := range it.All() {
		if err != nil {
			last = err
			break
		}
		got = append(got, rec)
	}
	require.Equal(t, []string{"a", "b"}, got)
	require.ErrorIs(t, last, errBad)

	clean := New[string](strings.NewReader("x\ny"), "mem", lines)
	got = got[:0]
	for rec, err := range clean.All() {
		require.NoError(t, err)
		got = append(got, rec)
	}
	require.Equal(t, []string{"x", "y"}, got)
}

func TestCloseReleasesOwnedSource(t *testing.T) {
	src := &trackingCloser{Reader: strings.NewReader("a\nb\n")}
	it := New[string](src, "mem", lines)
	_, err := it.Next()
	require.NoError(t, err)

	require.NoError(t, it.Close())
	require.NoError(t, it.Close())
	require.Equal(t, 1, src.closed)
	require.Equal(t, Exhausted, it.State())
}
