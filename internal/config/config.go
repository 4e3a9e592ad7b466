// Package config resolves runtime settings for the seqio command.
//
// Precedence, highest first: command-line flags, SEQIO_* environment
// variables, the --config file, built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seqio/core/format"
	"seqio/core/stream"
)

const EnvPrefix = "SEQIO"

const (
	DefaultLogLevel = "info"
	DefaultThreads  = 0 // all CPUs

	MinCompressionLevel = stream.DefaultLevel
	MaxCompressionLevel = 9
)

type Config struct {
	LogLevel         string `mapstructure:"log-level"`
	Quiet            bool   `mapstructure:"quiet"`
	Threads          int    `mapstructure:"threads"`
	CompressionLevel int    `mapstructure:"compression-level"`
	Format           string `mapstructure:"format"` // "" = by extension
}

func Default() Config {
	return Config{
		LogLevel:         DefaultLogLevel,
		Threads:          DefaultThreads,
		CompressionLevel: stream.DefaultLevel,
	}
}

// Load merges defaults, the optional config file, the environment and the
// parsed flags in fs. Flags are matched to keys by name.
func Load(v *viper.Viper, fs *pflag.FlagSet, file string) (Config, error) {
	d := Default()
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("threads", d.Threads)
	v.SetDefault("compression-level", d.CompressionLevel)
	v.SetDefault("format", d.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid `log-level`; expected: debug|info|warn|error, given: %q", c.LogLevel)
	}
	if c.Threads < 0 {
		return fmt.Errorf("invalid `threads`; expected: >= 0, given: %d", c.Threads)
	}
	if c.CompressionLevel < MinCompressionLevel || c.CompressionLevel > MaxCompressionLevel {
		return fmt.Errorf("invalid `compression-level`; expected: %d..%d, given: %d",
			MinCompressionLevel, MaxCompressionLevel, c.CompressionLevel)
	}
	if c.Format != "" {
		if _, err := format.Parse(c.Format); err != nil {
			return fmt.Errorf("invalid `format`; expected: fasta|fastq, given: %q", c.Format)
		}
	}
	return nil
}

// FormatKind is the forced record format, or format.Unknown to detect it
// from each file name.
func (c *Config) FormatKind() format.Kind {
	k, _ := format.Parse(c.Format)
	return k
}
