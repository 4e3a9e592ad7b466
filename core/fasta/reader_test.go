package fasta

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"seqio/core/iterator"
	"seqio/core/record"
	"seqio/core/seqerr"
)

func collect(t *testing.T, r *Reader) ([]record.Fasta, error) {
	t.Helper()
	var out []record.Fasta
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func parse(t *testing.T, in string) ([]record.Fasta, error) {
	t.Helper()
	return collect(t, NewReader(strings.NewReader(in), "mem"))
}

func TestMultiLineBodyReassembly(t *testing.T) {
	got, err := parse(t, ">h1\nACGT\nACGT\n>h2\nTT\n")
	require.NoError(t, err)
	require.Equal(t, []record.Fasta{
		{Header: ">h1", Sequence: "ACGTACGT"},
		{Header: ">h2", Sequence: "TT"},
	}, got)
}

func TestEmptyBodyIsValid(t *testing.T) {
	got, err := parse(t, ">a\n>b\nAC\n>c\n")
	require.NoError(t, err)
	require.Equal(t, []record.Fasta{
		{Header: ">a", Sequence: ""},
		{Header: ">b", Sequence: "AC"},
		{Header: ">c", Sequence: ""},
	}, got)
}

func TestEmptyInputYieldsNoRecords(t *testing.T) {
	r := NewReader(strings.NewReader(""), "mem")
	_, err := r.Next()
	require.Equal(t, io.EOF, err)
	require.Equal(t, iterator.Exhausted, r.State())
	require.Zero(t, r.Count())
}

func TestLeadingBlankLinesAreTolerated(t *testing.T) {
	got, err := parse(t, "\n\r\n>h\nAC\n\nGT\n")
	require.NoError(t, err)
	require.Equal(t, []record.Fasta{{Header: ">h", Sequence: "ACGT"}}, got)
}

func TestGarbageBeforeFirstHeaderIsFormatError(t *testing.T) {
	r := NewReader(strings.NewReader("\nACGT\n>h\nAC\n"), "in.fa")
	_, err := r.Next()
	var fe *seqerr.FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "in.fa", fe.Path)
	require.Equal(t, 2, fe.Line)
	require.Equal(t, iterator.Failed, r.State())

	_, again := r.Next()
	require.Equal(t, err, again)
}

func TestMarkerOnlyCountsAtLineStart(t *testing.T) {
	got, err := parse(t, ">h\nAC>GT\n>i\nA\n")
	require.NoError(t, err)
	require.Equal(t, "AC>GT", got[0].Sequence)
	require.Len(t, got, 2)
}

func TestUnterminatedLastLineAndCRLF(t *testing.T) {
	got, err := parse(t, ">h desc\r\nAC\r\nGT")
	require.NoError(t, err)
	require.Equal(t, []record.Fasta{{Header: ">h desc", Sequence: "ACGT"}}, got)
	require.Equal(t, "h", got[0].ID())
}

func sample() []record.Fasta {
	return []record.Fasta{
		record.NewFasta("sequence_1", strings.Repeat("ACTG", 10)),
		record.NewFasta("empty", ""),
		{Header: ">chr2 some description", Sequence: "NNNNacgtNNNN"},
	}
}

func TestRoundTripAcrossFramings(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x.out", "x.out.gz", "x.fa.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			w, err := Create(path)
			require.NoError(t, err)
			for _, rec := range sample() {
				require.NoError(t, w.Write(rec))
			}
			require.Equal(t, 3, w.Count())
			require.NoError(t, w.Close())

			r, err := Open(path)
			require.NoError(t, err)
			defer r.Close()
			got, err := collect(t, r)
			require.NoError(t, err)
			require.Equal(t, sample(), got)
		})
	}
}

func TestPlainOutputBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.out")
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(record.Fasta{Header: ">sequence_1", Sequence: "ACTGACTG"}))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, ">sequence_1\nACTGACTG\n", string(raw))
}

func TestEncodeRefusesInvalidRecord(t *testing.T) {
	var sb strings.Builder
	err := Encode(&sb, record.Fasta{Header: "no-marker", Sequence: "A"})
	var fe *seqerr.FormatError
	require.ErrorAs(t, err, &fe)
	require.Zero(t, sb.Len())
	require.False(t, strings.HasPrefix(err.Error(), ":"), err.Error())

	path := filepath.Join(t.TempDir(), "x.fa")
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(record.NewFasta("ok", "A")))
	err = w.Write(record.Fasta{Header: ">bad", Sequence: "A\nC"})
	require.ErrorAs(t, err, &fe)
	require.Equal(t, path, fe.Path)
	require.Equal(t, 3, fe.Line)
	require.NoError(t, w.Close())
}

func TestStreamStdin(t *testing.T) {
	orig := os.Stdin
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = pr
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(pw, ">seq1\nACGT\n>seq2\nNNnn\n")
		_ = pw.Close()
	}()

	r, err := Open("-")
	require.NoError(t, err)
	got, err := collect(t, r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Len(t, got, 2)
	require.Equal(t, "seq2", got[1].ID())
}
