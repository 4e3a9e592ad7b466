// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"seqio/core/stream"
)

// Global flag names. They double as config keys (see internal/config).
const (
	FlagConfig           = "config"
	FlagLogLevel         = "log-level"
	FlagQuiet            = "quiet"
	FlagThreads          = "threads"
	FlagCompressionLevel = "compression-level"
	FlagFormat           = "format"
)

// GlobalOptions holds flags that are consumed before config resolution.
// Everything else is read back through viper.
type GlobalOptions struct {
	ConfigFile string
}

// CopyOptions configures cat and fq2fa.
type CopyOptions struct {
	Out string
}

// ReportOptions configures stats and validate.
type ReportOptions struct {
	Output string
}

func AddGlobalFlags(fs *pflag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.ConfigFile, FlagConfig, "", "config file (yaml, json or toml)")
	fs.String(FlagLogLevel, "info", "log level: debug | info | warn | error")
	fs.BoolP(FlagQuiet, "q", false, "only log errors")
	fs.IntP(FlagThreads, "j", 0, "files processed concurrently (0 = all CPUs)")
	fs.Int(FlagCompressionLevel, stream.DefaultLevel, "compression level for .gz/.zst outputs (-1 = codec default)")
	fs.StringP(FlagFormat, "f", "", "force record format: fasta | fastq (default: by extension)")
}

func AddCopyFlags(fs *pflag.FlagSet, o *CopyOptions) {
	fs.StringVarP(&o.Out, "out", "o", "-", "output path; .gz/.zst selects compression ('-' = stdout)")
}

func AddReportFlags(fs *pflag.FlagSet, o *ReportOptions, def string, formats []string) {
	fs.StringVar(&o.Output, "output", def, fmt.Sprintf("report format: %v", formats))
}

func (o CopyOptions) Validate() error {
	if o.Out == "" {
		return errors.New("--out must not be empty")
	}
	return nil
}

func (o ReportOptions) Validate(formats []string) error {
	for _, f := range formats {
		if o.Output == f {
			return nil
		}
	}
	return fmt.Errorf("invalid --output %q (want one of %v)", o.Output, formats)
}
