// Package record defines the in-memory FASTA and FASTQ records.
//
// Headers keep their leading marker ('>' or '@') exactly as read, so a
// record serializes back to the bytes it was parsed from.
package record

import (
	"errors"
	"fmt"
	"strings"
)

// Header markers.
const (
	FastaMarker     = '>'
	FastqMarker     = '@'
	SeparatorMarker = '+'
)

// displayWidth bounds the sequence shown by String.
const displayWidth = 30

// Fasta is a two-field record: a header line and a sequence body whose
// line breaks have been removed.
type Fasta struct {
	Header   string
	Sequence string
}

// NewFasta builds a record from an identifier without marker.
func NewFasta(id, seq string) Fasta {
	return Fasta{Header: string(FastaMarker) + id, Sequence: seq}
}

// ID is the header text up to the first whitespace, marker removed.
func (r Fasta) ID() string { return headerID(r.Header) }

// Description is the header text after the ID.
func (r Fasta) Description() string { return headerDesc(r.Header) }

func (r Fasta) Len() int { return len(r.Sequence) }

// Validate checks the invariants a serialized record relies on.
func (r Fasta) Validate() error {
	if r.Header == "" || r.Header[0] != FastaMarker {
		return fmt.Errorf("fasta header %q must start with %q", r.Header, FastaMarker)
	}
	if hasEOL(r.Header) || hasEOL(r.Sequence) {
		return errors.New("fasta record contains a line break")
	}
	if r.Sequence != "" && r.Sequence[0] == FastaMarker {
		return fmt.Errorf("fasta sequence of %q starts with %q", r.Header, FastaMarker)
	}
	return nil
}

func (r Fasta) String() string {
	return r.Header + " " + truncate(r.Sequence)
}

// Fastq is a four-line record. Sequence and Quality have equal length.
type Fastq struct {
	Header    string
	Sequence  string
	Separator string
	Quality   string
}

// NewFastq builds a record with a bare "+" separator.
func NewFastq(id, seq, qual string) Fastq {
	return Fastq{
		Header:    string(FastqMarker) + id,
		Sequence:  seq,
		Separator: string(SeparatorMarker),
		Quality:   qual,
	}
}

func (r Fastq) ID() string          { return headerID(r.Header) }
func (r Fastq) Description() string { return headerDesc(r.Header) }
func (r Fastq) Len() int            { return len(r.Sequence) }

func (r Fastq) Validate() error {
	if r.Header == "" || r.Header[0] != FastqMarker {
		return fmt.Errorf("fastq header %q must start with %q", r.Header, FastqMarker)
	}
	if r.Separator == "" || r.Separator[0] != SeparatorMarker {
		return fmt.Errorf("fastq separator %q must start with %q", r.Separator, SeparatorMarker)
	}
	if hasEOL(r.Header) || hasEOL(r.Sequence) || hasEOL(r.Separator) || hasEOL(r.Quality) {
		return errors.New("fastq record contains a line break")
	}
	if len(r.Sequence) != len(r.Quality) {
		return fmt.Errorf("fastq record %q: sequence length %d != quality length %d",
			r.Header, len(r.Sequence), len(r.Quality))
	}
	return nil
}

func (r Fastq) String() string {
	return r.Header + " " + truncate(r.Sequence) + " " + truncate(r.Quality)
}

// ToFasta drops the quality and swaps the header marker.
func (r Fastq) ToFasta() Fasta {
	h := r.Header
	if h != "" && h[0] == FastqMarker {
		h = h[1:]
	}
	return Fasta{Header: string(FastaMarker) + h, Sequence: r.Sequence}
}

func headerID(h string) string {
	if h == "" {
		return ""
	}
	h = h[1:]
	if i := strings.IndexAny(h, " \t"); i >= 0 {
		return h[:i]
	}
	return h
}

func headerDesc(h string) string {
	if h == "" {
		return ""
	}
	h = h[1:]
	if i := strings.IndexAny(h, " \t"); i >= 0 {
		return strings.TrimSpace(h[i+1:])
	}
	return ""
}

func hasEOL(s string) bool { return strings.ContainsAny(s, "\r\n") }

func truncate(s string) string {
	if len(s) > displayWidth {
		return s[:displayWidth]
	}
	return s
}
