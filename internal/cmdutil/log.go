package cmdutil

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr-style logger. quiet keeps only errors.
func NewLogger(dst io.Writer, level string, quiet bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if quiet && lvl < log.ErrorLevel {
		lvl = log.ErrorLevel
	}
	logger := log.New(dst)
	logger.SetPrefix("seqio")
	logger.SetLevel(lvl)
	return logger, nil
}
