package audiocodec

import (
	"github.com/simonhull/audiocodec/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatID3v2   = types.FormatID3v2
	FormatMPEG    = types.FormatMPEG
	FormatMP4     = types.FormatMP4
)

// FormatFromPath is a wrapper around types.FormatFromPath. Only the file
// extension is used; contents are never probed.
func FormatFromPath(path string) Format {
	return types.FormatFromPath(path)
}
