package stream

import (
	"bytes"
	stdgzip "compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"seqio/core/seqerr"
)

const payload = ">seq1\nACGT\n>seq2\nNNnn\n"

func TestCompressionFor(t *testing.T) {
	cases := map[string]Compression{
		"x.fa":           None,
		"x.fa.gz":        Gzip,
		"x.fa.GZ":        None,
		"x.gz.fa":        None,
		"dir.gz/x.fa":    None,
		"x.fq.zst":       Zstd,
		"x.out":          None,
		"-":              None,
		"archive.tar.gz": Gzip,
	}
	for path, want := range cases {
		require.Equal(t, want, CompressionFor(path), path)
	}
	require.Equal(t, "x.fa", TrimCompression("x.fa.gz"))
	require.Equal(t, "x.fa", TrimCompression("x.fa"))
}

func writeAll(t *testing.T, path string, data string) {
	t.Helper()
	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestPlainRoundTripIsByteExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.out")
	writeAll(t, path, payload)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, payload, string(raw))
	require.Equal(t, payload, readAll(t, path))
}

func TestGzipOutputDecodesWithStandardLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.out.gz")
	writeAll(t, path, payload)

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	gr, err := stdgzip.NewReader(fh)
	require.NoError(t, err)
	b, err := io.ReadAll(gr)
	require.NoError(t, err)
	require.Equal(t, payload, string(b))

	require.Equal(t, payload, readAll(t, path))
}

func TestOpenReadsConcatenatedGzipMembers(t *testing.T) {
	var buf bytes.Buffer
	for _, part := range []string{">a\nAC\n", ">b\nGT\n"} {
		gw := stdgzip.NewWriter(&buf)
		_, err := gw.Write([]byte(part))
		require.NoError(t, err)
		require.NoError(t, gw.Close())
	}
	path := filepath.Join(t.TempDir(), "multi.fa.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	require.Equal(t, ">a\nAC\n>b\nGT\n", readAll(t, path))
}

func TestZstdRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.fq.zst")
	writeAll(t, path, payload)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEqual(t, payload, string(raw))
	require.Equal(t, payload, readAll(t, path))
}

func TestCreateLevel(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateLevel(filepath.Join(dir, "fast.gz"), 1)
	require.NoError(t, err)
	require.Equal(t, Gzip, w.Compression())
	require.NoError(t, w.Close())

	_, err = CreateLevel(filepath.Join(dir, "bad.gz"), 42)
	var ioe *seqerr.IOError
	require.ErrorAs(t, err, &ioe)
	require.Equal(t, "create", ioe.Op)
}

func TestOpenMissingFileIsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.fa")
	_, err := Open(path)
	var ioe *seqerr.IOError
	require.ErrorAs(t, err, &ioe)
	require.Equal(t, "open", ioe.Op)
	require.Equal(t, path, ioe.Path)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCreateMissingParentIsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.fa.gz")
	_, err := Create(path)
	var ioe *seqerr.IOError
	require.ErrorAs(t, err, &ioe)
	require.Equal(t, "create", ioe.Op)
	require.Equal(t, path, ioe.Path)
}

func TestMislabeledGzipFailsOnFirstRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.fa.gz")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	r, err := Open(path)
	require.NoError(t, err, "open must not inspect contents")
	defer r.Close()

	lr := NewLineReader(r, path)
	_, err = lr.ReadLine()
	var ioe *seqerr.IOError
	require.ErrorAs(t, err, &ioe)
	require.Equal(t, "read", ioe.Op)
	require.Equal(t, path, ioe.Path)

	// The failure is sticky.
	_, err2 := lr.Peek()
	require.Equal(t, err, err2)
}

func TestEmptyGzipFileIsEmptyStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fa.gz")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	_, err = NewLineReader(r, path).ReadLine()
	require.Equal(t, io.EOF, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.fa.gz")
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestOpenStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, payload)
		_ = w.Close()
	}()

	s, err := Open("-")
	require.NoError(t, err)
	b, err := io.ReadAll(s)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.Equal(t, payload, string(b))
}

func TestNewReaderWrapsCompressedSource(t *testing.T) {
	var buf bytes.Buffer
	gw := stdgzip.NewWriter(&buf)
	_, _ = gw.Write([]byte(payload))
	require.NoError(t, gw.Close())

	r := NewReader(&buf, "mem", Gzip)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, payload, string(b))
	require.NoError(t, r.Close())
}
