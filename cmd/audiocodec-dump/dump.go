package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	mpb "github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/audiocodec"
)

type result struct {
	path    string
	format  audiocodec.Format
	report  *audiocodec.Report
	tags    *tagInfo
	err     error
	elapsed time.Duration
}

type dumper struct {
	cfg     *Config
	logger  log.Logger
	metrics *metrics
	stdout  io.Writer
	stderr  io.Writer
}

// collectPaths expands arguments into files. Directories are walked for
// files with a known MPEG or MP4 extension; named files are kept as is.
func collectPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		path, err := homedir.Expand(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "expand %s", arg)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(err, "stat input")
		}

		if !info.IsDir() {
			paths = append(paths, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && audiocodec.FormatFromPath(p) != audiocodec.FormatUnknown {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", path)
		}
	}

	return paths, nil
}

func (d *dumper) inspect(path string) result {
	start := time.Now()
	r := result{path: path, format: audiocodec.FormatFromPath(path)}

	r.report, r.err = audiocodec.InspectFile(path, d.cfg.Decode.Options()...)
	if r.err == nil && d.cfg.Tags {
		tags, err := readTags(path)
		if err != nil {
			level.Debug(d.logger).Log("msg", "no readable tags", "path", path, "err", err)
		}
		r.tags = tags
	}

	r.elapsed = time.Since(start)
	return r
}

// run inspects every path, writes the reports in input order and returns an
// error if any file failed.
func (d *dumper) run(ctx context.Context, paths []string) error {
	var (
		progress *mpb.Progress
		bar      *mpb.Bar
	)
	if d.cfg.Progress {
		progress = mpb.New(mpb.WithOutput(d.stderr))
		bar = progress.AddBar(int64(len(paths)),
			mpb.PrependDecorators(
				decor.Name("Files", decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	results := make([]result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = d.inspect(path)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}

	err := g.Wait()
	if progress != nil {
		if err != nil {
			bar.Abort(false)
		}
		progress.Wait()
	}
	if err != nil {
		return err
	}

	failed := 0
	records := make([]record, 0, len(results))
	for _, r := range results {
		d.metrics.observe(r)

		if r.err != nil {
			failed++
			level.Warn(d.logger).Log("msg", "inspection failed", "path", r.path, "err", r.err)
		} else {
			level.Debug(d.logger).Log("msg", "inspected", "path", r.path, "format", r.format, "elapsed", r.elapsed)
		}

		rec := newRecord(r)
		if d.cfg.Output == "text" {
			if err := writeText(d.stdout, rec); err != nil {
				return errors.Wrap(err, "write output")
			}
			continue
		}
		records = append(records, rec)
	}

	if d.cfg.Output == "yaml" {
		if err := writeYAML(d.stdout, records); err != nil {
			return errors.Wrap(err, "write output")
		}
	}

	if path := d.cfg.Metrics.Textfile; path != "" {
		if err := d.metrics.writeTextfile(path); err != nil {
			return errors.Wrap(err, "write metrics")
		}
		level.Info(d.logger).Log("msg", "wrote metrics", "path", path)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(results))
	}

	return nil
}
