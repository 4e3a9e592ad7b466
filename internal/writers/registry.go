// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"seqio/pkg/api"
)

// Report writer registries (format → handler). Handlers register in init()
// blocks of the per-report files.
var (
	StatsWriters      = map[string]func(w io.Writer, rows []api.StatsV1) error{}
	ValidationWriters = map[string]func(w io.Writer, rows []api.ValidationV1) error{}
)

// Register helpers (idempotent last-wins)
func RegisterStats(format string, fn func(io.Writer, []api.StatsV1) error) {
	StatsWriters[format] = fn
}

func RegisterValidation(format string, fn func(io.Writer, []api.ValidationV1) error) {
	ValidationWriters[format] = fn
}

// Dispatch helpers used by the app.
func WriteStats(format string, w io.Writer, rows []api.StatsV1) error {
	fn, ok := StatsWriters[format]
	if !ok {
		return fmt.Errorf("unknown stats format %q (want one of %v)", format, StatsFormats())
	}
	return fn(w, rows)
}

func WriteValidation(format string, w io.Writer, rows []api.ValidationV1) error {
	fn, ok := ValidationWriters[format]
	if !ok {
		return fmt.Errorf("unknown validation format %q (want one of %v)", format, ValidationFormats())
	}
	return fn(w, rows)
}

func StatsFormats() []string      { return keys(StatsWriters) }
func ValidationFormats() []string { return keys(ValidationWriters) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
