// internal/cliutil/cliutil.go
package cliutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Stdin is the positional that names standard input.
const Stdin = "-"

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandInputs expands any globs among path-like positionals. Matches are
// returned in filepath.Glob order. "-" passes through but may appear once,
// since stdin can only be consumed once.
func ExpandInputs(posArgs []string) ([]string, error) {
	if len(posArgs) == 0 {
		return nil, errors.New("at least one input file is required")
	}
	var out []string
	stdin := false
	for _, a := range posArgs {
		if a == Stdin {
			if stdin {
				return nil, errors.New("stdin ('-') given more than once")
			}
			stdin = true
			out = append(out, a)
			continue
		}
		if hasGlobMeta(a) {
			m, err := filepath.Glob(a)
			if err != nil {
				return nil, fmt.Errorf("bad glob %q: %v", a, err)
			}
			if len(m) == 0 {
				return nil, fmt.Errorf("no input matched %q", a)
			}
			out = append(out, m...)
		} else {
			out = append(out, a)
		}
	}
	return out, nil
}
