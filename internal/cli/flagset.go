package cli

import (
	"github.com/spf13/cobra"

	"seqio/internal/version"
)

// NewRootCommand returns the top-level command with the global flags bound
// to g. Errors and usage are left to the caller to print.
func NewRootCommand(name string, g *GlobalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: "Stream FASTA/FASTQ records through plain, gzip or zstd files",
		Long: name + ` reads and writes FASTA and FASTQ files without caring whether they
are compressed. The framing is chosen from the file name: a trailing ".gz"
means gzip, ".zst" means zstd, anything else is plain text. The record
format is chosen from the extension before that (.fa/.fasta/.fna or
.fq/.fastq), or forced with --format.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(name + " version {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
	AddGlobalFlags(root.PersistentFlags(), g)
	return root
}
