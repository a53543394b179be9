package audiocodec_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/audiocodec"
)

func TestInspectFile(t *testing.T) {
	mp3 := writeTempFile(t, "song.mp3", createTestMP3(t, mp3Fixture{id3v2Size: 100, frames: 10}))
	m4a := writeTempFile(t, "song.M4A", createTestM4A(t))

	tests := []struct {
		name   string
		path   string
		format audiocodec.Format
	}{
		{"mp3", mp3, audiocodec.FormatMPEG},
		{"m4a upper case", m4a, audiocodec.FormatMP4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := audiocodec.InspectFile(tt.path)
			if err != nil {
				t.Fatalf("InspectFile failed: %v", err)
			}

			if report.Format != tt.format {
				t.Errorf("expected format %v, got %v", tt.format, report.Format)
			}
			if report.Path != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, report.Path)
			}

			stat, err := os.Stat(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if report.Size != stat.Size() {
				t.Errorf("expected size %d, got %d", stat.Size(), report.Size)
			}

			switch tt.format {
			case audiocodec.FormatMPEG:
				if report.MP3 == nil || report.MP4 != nil {
					t.Fatal("expected only an MP3 report")
				}
				if report.MP3.FirstFrame.Offset != 110 {
					t.Errorf("expected first frame at 110, got %d", report.MP3.FirstFrame.Offset)
				}
			case audiocodec.FormatMP4:
				if report.MP4 == nil || report.MP3 != nil {
					t.Fatal("expected only an MP4 report")
				}
			}

			if len(report.Warnings()) != 0 {
				t.Errorf("unexpected warnings: %v", report.Warnings())
			}
		})
	}
}

func TestInspectFile_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTempFile(t, "notes.xyz", []byte("hello"))

		_, err := audiocodec.InspectFile(path)
		var unsupported *audiocodec.UnsupportedFormatError
		if !errors.As(err, &unsupported) {
			t.Fatalf("expected *UnsupportedFormatError, got %v", err)
		}
		if unsupported.Path != path {
			t.Errorf("expected path %s, got %s", path, unsupported.Path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := audiocodec.InspectFile(filepath.Join(t.TempDir(), "missing.mp3"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("decode error", func(t *testing.T) {
		path := writeTempFile(t, "empty.mp3", make([]byte, 512))

		_, err := audiocodec.InspectFile(path)
		if !errors.Is(err, audiocodec.ErrNoFrame) {
			t.Errorf("expected ErrNoFrame, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "inspect MPEG") {
			t.Errorf("expected error to name the format, got %v", err)
		}
	})
}

func TestInspectContext(t *testing.T) {
	path := writeTempFile(t, "song.mp3", createTestMP3(t, mp3Fixture{frames: 3}))

	if _, err := audiocodec.InspectContext(context.Background(), path); err != nil {
		t.Fatalf("InspectContext failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := audiocodec.InspectContext(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInspectMany(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 8 {
		var path string
		if i%2 == 0 {
			path = filepath.Join(dir, fmt.Sprintf("track%02d.mp3", i))
			data := createTestMP3(t, mp3Fixture{frames: i + 1})
			if err := os.WriteFile(path, data, 0o644); err != nil {
				t.Fatal(err)
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("track%02d.m4b", i))
			if err := os.WriteFile(path, createTestM4A(t), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		paths = append(paths, path)
	}

	reports, err := audiocodec.InspectMany(context.Background(), paths)
	if err != nil {
		t.Fatalf("InspectMany failed: %v", err)
	}

	if len(reports) != len(paths) {
		t.Fatalf("expected %d reports, got %d", len(paths), len(reports))
	}
	for i, report := range reports {
		if report.Path != paths[i] {
			t.Errorf("report %d is for %s, expected %s", i, report.Path, paths[i])
		}
	}
}

func TestInspectMany_Errors(t *testing.T) {
	good := writeTempFile(t, "good.mp3", createTestMP3(t, mp3Fixture{frames: 3}))
	bad := writeTempFile(t, "bad.mp3", make([]byte, 256))

	t.Run("partial failure", func(t *testing.T) {
		reports, err := audiocodec.InspectMany(context.Background(), []string{good, bad})
		if err == nil {
			t.Fatal("expected an error")
		}
		if reports != nil {
			t.Errorf("expected no reports, got %d", len(reports))
		}
		if !strings.Contains(err.Error(), bad) {
			t.Errorf("expected error to name %s, got %v", bad, err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := audiocodec.InspectMany(ctx, []string{good, good})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		reports, err := audiocodec.InspectMany(context.Background(), nil)
		if err != nil || reports != nil {
			t.Errorf("expected nil, nil; got %v, %v", reports, err)
		}
	})
}
