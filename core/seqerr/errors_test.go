package seqerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatErrorLocation(t *testing.T) {
	e := &FormatError{Path: "in.fq", Line: 3, Header: "@h", Msg: "expected separator starting with '+'"}
	require.Equal(t, `in.fq:3: expected separator starting with '+' (record "@h")`, e.Error())

	e = &FormatError{Path: "in.fa", Line: 2, Msg: "expected header starting with '>'"}
	require.Equal(t, "in.fa:2: expected header starting with '>'", e.Error())

	// not yet attached to a stream
	e = &FormatError{Header: "@h", Msg: "fastq record contains a line break"}
	require.Equal(t, `fastq record contains a line break (record "@h")`, e.Error())
}
