// Package types provides the error and format types shared by the codec packages.
package types

import (
	"path/filepath"
	"strings"
)

// Format identifies the structure family a decoder works on.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatID3v2 represents an ID3v2 tag.
	FormatID3v2
	// FormatMPEG represents an MPEG audio stream (MP1/MP2/MP3).
	FormatMPEG
	// FormatMP4 represents an MP4-style atom container (M4A, M4B, ...).
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatID3v2:
		return "ID3v2"
	case FormatMPEG:
		return "MPEG"
	case FormatMP4:
		return "MP4"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMPEG:
		return []string{".mp3", ".mp2", ".mp1", ".mpga"}
	case FormatMP4:
		return []string{".m4a", ".m4b", ".mp4", ".m4p", ".m4r", ".m4v"}
	case FormatID3v2, FormatUnknown:
		return nil
	default:
		return nil
	}
}

// FormatFromPath maps a file extension to the structure family stored in it.
//
// This is a name-based lookup, not content detection. ID3v2 is never returned
// since it is a tag embedded in other files.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range []Format{FormatMPEG, FormatMP4} {
		for _, e := range f.Extensions() {
			if e == ext {
				return f
			}
		}
	}
	return FormatUnknown
}
