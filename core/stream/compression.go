package stream

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression is the framing selected from a path's final extension.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

// Compression markers. Matching is exact and case-sensitive.
const (
	GzipExt = ".gz"
	ZstdExt = ".zst"
)

// DefaultLevel selects each codec's default compression level.
const DefaultLevel = -1

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return "none"
}

// Ext returns the path suffix that selects c ("" for None).
func (c Compression) Ext() string {
	switch c {
	case Gzip:
		return GzipExt
	case Zstd:
		return ZstdExt
	}
	return ""
}

// CompressionFor inspects only the last extension component of path.
// "reads.fq.gz" is gzip, "reads.fq.GZ" and "reads.gz.fq" are plain.
func CompressionFor(path string) Compression {
	switch filepath.Ext(path) {
	case GzipExt:
		return Gzip
	case ZstdExt:
		return Zstd
	}
	return None
}

// TrimCompression strips the compression marker, if any, from path.
func TrimCompression(path string) string {
	return strings.TrimSuffix(path, CompressionFor(path).Ext())
}

// lazyDecoder defers building the decompressor until the first Read so that
// opening a file never inspects its contents. A mislabeled file fails on the
// first pull instead of at open time.
type lazyDecoder struct {
	src  io.Reader
	comp Compression
	r    io.Reader
	c    io.Closer
	err  error
}

func (d *lazyDecoder) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.r == nil {
		if err := d.init(); err != nil {
			d.err = err
			return 0, err
		}
	}
	return d.r.Read(p)
}

func (d *lazyDecoder) init() error {
	switch d.comp {
	case Gzip:
		gr, err := gzip.NewReader(d.src)
		if err != nil {
			// A zero-byte .gz file is an empty stream, not a corrupt one.
			if err == io.EOF {
				return io.EOF
			}
			return fmt.Errorf("gzip: %w", err)
		}
		gr.Multistream(true)
		d.r, d.c = gr, gr
	case Zstd:
		zr, err := zstd.NewReader(d.src, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		d.r, d.c = zr, closerFunc(func() error { zr.Close(); return nil })
	default:
		d.r = d.src
	}
	return nil
}

func (d *lazyDecoder) Close() error {
	if d.c == nil {
		return nil
	}
	return d.c.Close()
}

// newEncoder wraps w in the compressor for comp; nil means plain.
func newEncoder(w io.Writer, comp Compression, level int) (io.WriteCloser, error) {
	switch comp {
	case Gzip:
		gw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, fmt.Errorf("gzip level %d: %w", level, err)
		}
		return gw, nil
	case Zstd:
		zl := zstd.SpeedDefault
		if level != DefaultLevel {
			zl = zstd.EncoderLevelFromZstd(level)
		}
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zl), zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd level %d: %w", level, err)
		}
		return zw, nil
	}
	return nil, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
