package audiocodec

import (
	"context"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Report is the result of inspecting a file.
//
// Exactly one of MP3 and MP4 is set, depending on Format. A Report holds
// no file handle; nothing needs closing.
type Report struct {
	// Path to the inspected file
	Path string

	// Format chosen from the file extension
	Format Format

	// File size in bytes
	Size int64

	MP3 *MP3Report
	MP4 *MP4Report
}

// Warnings returns the warnings of the format-specific report.
func (r *Report) Warnings() []Warning {
	switch {
	case r.MP3 != nil:
		return r.MP3.Warnings
	case r.MP4 != nil:
		return r.MP4.Warnings
	default:
		return nil
	}
}

// InspectFile opens path and decodes its structures.
//
// The decoder is chosen by extension (see FormatFromPath): .mp3 and other
// MPEG audio extensions use InspectMP3, .m4a/.m4b/.mp4 use InspectMP4.
// Other extensions fail with an *UnsupportedFormatError.
//
// Example:
//
//	report, err := audiocodec.InspectFile("song.mp3")
//	if err != nil {
//		return err
//	}
//	fmt.Println(report.MP3.Properties.Duration)
func InspectFile(path string, opts ...Option) (*Report, error) {
	format := FormatFromPath(path)
	if format != FormatMPEG && format != FormatMP4 {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: "extension is not a known MPEG audio or MP4 extension",
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat file")
	}

	report := &Report{
		Path:   path,
		Format: format,
		Size:   stat.Size(),
	}

	switch format {
	case FormatMPEG:
		report.MP3, err = InspectMP3(f, report.Size, opts...)
	default:
		report.MP4, err = InspectMP4(f, opts...)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "inspect %s", format)
	}

	return report, nil
}

// InspectContext inspects a file with context support for cancellation.
//
// The context is checked before starting; decoding itself is synchronous.
func InspectContext(ctx context.Context, path string, opts ...Option) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return InspectFile(path, opts...)
}

// InspectMany inspects multiple files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails, the first error is returned and no reports.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	reports, err := audiocodec.InspectMany(ctx, paths, audiocodec.WithIgnoreWarnings())
//	if err != nil {
//		log.Fatal(err)
//	}
func InspectMany(ctx context.Context, paths []string, opts ...Option) ([]*Report, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Report, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := InspectFile(path, opts...)
			if err != nil {
				return errors.Wrap(err, path)
			}

			results[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
