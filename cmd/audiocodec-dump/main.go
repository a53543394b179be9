// Command audiocodec-dump prints the decoded ID3v2, MPEG and MP4 atom
// structures of audio files.
//
// Usage:
//
//	audiocodec-dump [flags] <file or directory>...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-kit/log/level"
	"github.com/prometheus/common/version"

	"github.com/simonhull/audiocodec"
)

const appName = "audiocodec-dump"

// Branch is set via build flag -ldflags -X main.Branch
var Branch string

func init() {
	info := audiocodec.GetVersionInfo()
	version.Version = info.Version
	version.Branch = Branch
	version.Revision = info.GitCommit
	version.BuildDate = info.BuildTime
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	cfg, inputs, err := loadConfig(appName, args)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 2
	}

	if cfg.PrintVersion {
		fmt.Println(version.Print(appName))
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 2
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 2
	}

	paths, err := collectPaths(inputs)
	if err != nil {
		level.Error(logger).Log("msg", "failed to collect inputs", "err", err)
		return 1
	}
	if len(paths) == 0 {
		level.Error(logger).Log("msg", "no input files")
		return 2
	}

	level.Debug(logger).Log("msg", "starting", "app", appName, "version", version.Info(), "files", len(paths))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := &dumper{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	if err := d.run(ctx, paths); err != nil {
		level.Error(logger).Log("msg", "dump failed", "err", err)
		return 1
	}

	return 0
}
