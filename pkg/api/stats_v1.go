// pkg/api/stats_v1.go
package api

// StatsV1 is the stable JSON schema for per-file statistics.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type StatsV1 struct {
	File        string  `json:"file"`
	Format      string  `json:"format"`      // "fasta" | "fastq"
	Compression string  `json:"compression"` // "none" | "gzip" | "zstd"
	Records     int     `json:"records"`
	Bases       int64   `json:"bases"`
	MinLen      int     `json:"min_len"`
	MaxLen      int     `json:"max_len"`
	MeanLen     float64 `json:"mean_len"`
	N50         int     `json:"n50"`
	SizeBytes   int64   `json:"size_bytes,omitempty"`
}

// ValidationV1 is the stable JSON schema for one validated file.
type ValidationV1 struct {
	File    string `json:"file"`
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
	Line    int    `json:"line,omitempty"`
}
