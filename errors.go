package audiocodec

import (
	"github.com/simonhull/audiocodec/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// A declared length would read past the end of the stream.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Returned for invalid sizes, reserved MPEG fields, bad VBR headers and
// the deferred "invalid sample rate" error.
type CorruptedFileError = types.CorruptedFileError

// FakeTagError is an alias to types.FakeTagError.
type FakeTagError = types.FakeTagError

// BadID3v2VersionError is an alias to types.BadID3v2VersionError.
type BadID3v2VersionError = types.BadID3v2VersionError

// BadAtomError is an alias to types.BadAtomError.
type BadAtomError = types.BadAtomError

// TooMuchDataError is an alias to types.TooMuchDataError.
type TooMuchDataError = types.TooMuchDataError

// IOError is an alias to types.IOError. It wraps the underlying stream
// error, so errors.Is(err, io.ErrUnexpectedEOF) reports truncation.
type IOError = types.IOError

// UnsupportedWriteError is an alias to types.UnsupportedWriteError.
type UnsupportedWriteError = types.UnsupportedWriteError

// Warning is an alias to types.Warning.
type Warning = types.Warning
