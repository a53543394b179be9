package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/grafana/dskit/flagext"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/zachfi/zkit/pkg/util"
	"gopkg.in/yaml.v2"

	"github.com/simonhull/audiocodec"
)

const configFileOption = "config.file"

type Config struct {
	LogLevel    string        `yaml:"log-level,omitempty"`
	Output      string        `yaml:"output,omitempty"` // text or yaml
	Concurrency int           `yaml:"concurrency,omitempty"`
	Progress    bool          `yaml:"progress,omitempty"`
	Tags        bool          `yaml:"tags,omitempty"` // also read tag frames via dhowden/tag
	Decode      DecodeConfig  `yaml:"decode,omitempty"`
	Metrics     MetricsConfig `yaml:"metrics,omitempty"`

	PrintVersion bool `yaml:"-"`
}

type DecodeConfig struct {
	Restrictions   bool  `yaml:"restrictions,omitempty"`
	MaxSyncSearch  int64 `yaml:"max-sync-search,omitempty"`
	Strict         bool  `yaml:"strict,omitempty"`
	IgnoreWarnings bool  `yaml:"ignore-warnings,omitempty"`
}

type MetricsConfig struct {
	// Textfile is written in the Prometheus text format after the run.
	Textfile string `yaml:"textfile,omitempty"`
}

func (c *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.LogLevel, util.PrefixConfig(prefix, "log.level"), "info", "Log level: debug, info, warn or error.")
	f.StringVar(&c.Output, util.PrefixConfig(prefix, "output"), "text", "Output format: text or yaml.")
	f.IntVar(&c.Concurrency, util.PrefixConfig(prefix, "concurrency"), runtime.NumCPU(), "Files inspected in parallel.")
	f.BoolVar(&c.Progress, util.PrefixConfig(prefix, "progress"), false, "Show a progress bar on stderr.")
	f.BoolVar(&c.Tags, util.PrefixConfig(prefix, "tags"), false, "Also print title, artist and album.")
	f.BoolVar(&c.PrintVersion, util.PrefixConfig(prefix, "version"), false, "Print version information and exit.")

	c.Decode.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "decode"), f)
	c.Metrics.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "metrics"), f)
}

func (c *DecodeConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.BoolVar(&c.Restrictions, util.PrefixConfig(prefix, "restrictions"), false, "Decode ID3v2.4 tag restrictions.")
	f.Int64Var(&c.MaxSyncSearch, util.PrefixConfig(prefix, "max-sync-search"), 0, "Bytes scanned for the first MPEG frame, 0 for no limit.")
	f.BoolVar(&c.Strict, util.PrefixConfig(prefix, "strict"), false, "Fail a file on its first warning.")
	f.BoolVar(&c.IgnoreWarnings, util.PrefixConfig(prefix, "ignore-warnings"), false, "Suppress warnings.")
}

func (c *MetricsConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.Textfile, util.PrefixConfig(prefix, "textfile"), "", "Write run metrics to this file.")
}

// Options converts the decode settings to inspection options.
func (c DecodeConfig) Options() []audiocodec.Option {
	var opts []audiocodec.Option
	if c.Restrictions {
		opts = append(opts, audiocodec.WithRestrictions())
	}
	if c.MaxSyncSearch > 0 {
		opts = append(opts, audiocodec.WithMaxSyncSearch(c.MaxSyncSearch))
	}
	if c.Strict {
		opts = append(opts, audiocodec.WithStrictParsing())
	}
	if c.IgnoreWarnings {
		opts = append(opts, audiocodec.WithIgnoreWarnings())
	}
	return opts
}

func (c *Config) Validate() error {
	switch c.Output {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}

	if _, err := levelOption(c.LogLevel); err != nil {
		return err
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}

	if c.Decode.Strict && c.Decode.IgnoreWarnings {
		return errors.New("decode.strict and decode.ignore-warnings are mutually exclusive")
	}

	return nil
}

// loadConfig applies defaults, then the -config.file YAML, then the command
// line. It returns the remaining positional arguments.
func loadConfig(name string, args []string) (*Config, []string, error) {
	var configFile string

	// first get the config file
	scan := flag.NewFlagSet("", flag.ContinueOnError)
	scan.SetOutput(io.Discard)
	scan.StringVar(&configFile, configFileOption, "", "")

	// Parsing stops at the first unknown flag, so retry from each argument
	// until -config.file turns up or nothing is left.
	for rest := args; len(rest) > 0; rest = rest[1:] {
		_ = scan.Parse(rest)
	}

	config := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// load config defaults and register flags
	config.RegisterFlagsAndApplyDefaults("", fs)

	// overlay with config file if provided
	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "expand config file path")
		}

		buff, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to read configFile %s", path)
		}

		if err := yaml.UnmarshalStrict(buff, config); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse configFile %s", path)
		}
	}

	// overlay with cli
	flagext.IgnoredFlag(fs, configFileOption, "Configuration file to load")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if config.Metrics.Textfile != "" {
		path, err := homedir.Expand(config.Metrics.Textfile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "expand metrics textfile path")
		}
		config.Metrics.Textfile = path
	}

	return config, fs.Args(), nil
}
