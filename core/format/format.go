// Package format maps file names to record formats by extension.
//
// Detection never looks at file contents: one compression marker is stripped
// with stream.TrimCompression, then the remaining extension is looked up.
package format

import (
	"errors"
	"fmt"
	"path/filepath"

	"seqio/core/stream"
)

// Kind is a record format.
type Kind int

const (
	Unknown Kind = iota
	FASTA
	FASTQ
)

// ErrUnknownFormat is returned when a name carries no known extension.
var ErrUnknownFormat = errors.New("unknown record format")

var extensions = map[string]Kind{
	".fa":    FASTA,
	".fasta": FASTA,
	".fna":   FASTA,
	".ffn":   FASTA,
	".faa":   FASTA,
	".frn":   FASTA,
	".fq":    FASTQ,
	".fastq": FASTQ,
}

func (k Kind) String() string {
	switch k {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	}
	return "unknown"
}

// Parse accepts the names produced by String.
func Parse(s string) (Kind, error) {
	switch s {
	case "fasta", "fa":
		return FASTA, nil
	case "fastq", "fq":
		return FASTQ, nil
	}
	return Unknown, fmt.Errorf("%w %q (want fasta or fastq)", ErrUnknownFormat, s)
}

// Detect returns the format of path. "reads.fq.gz" is FASTQ; "reads.FQ" is
// not recognized.
func Detect(path string) (Kind, error) {
	ext := filepath.Ext(stream.TrimCompression(path))
	if k, ok := extensions[ext]; ok {
		return k, nil
	}
	return Unknown, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}
