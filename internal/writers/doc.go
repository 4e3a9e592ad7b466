// Package writers renders command reports (stats, validation) in the
// requested output format.
//
// Design:
//   - Writers own all presentation knowledge (tables, TSV, JSON, JSONL).
//   - The core packages never print; the app hands rows to a writer.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
