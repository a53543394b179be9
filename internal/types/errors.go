package types

import "fmt"

// OutOfBoundsError is returned when a declared length would read past the end of the stream.
type OutOfBoundsError struct {
	What   string
	Offset int64
	Length uint64
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("offset %d out of bounds (stream size: %d) while reading %s",
			e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("read of %d bytes at offset %d would exceed stream size %d while reading %s",
		e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when no decoder handles the input.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when a structure is invalid: bad sizes,
// reserved field values, missing required flags.
type CorruptedFileError struct {
	Reason string
	Format Format
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s: corrupted data at offset %d: %s", e.Format, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Format, e.Reason)
}

// FakeTagError is returned when a tag signature does not match.
type FakeTagError struct {
	Format Format
}

func (e *FakeTagError) Error() string {
	return fmt.Sprintf("%s: reading a tag with an invalid signature", e.Format)
}

// BadID3v2VersionError reports an unsupported ID3v2 major version. Minor is
// only informational.
type BadID3v2VersionError struct {
	Major byte
	Minor byte
}

func (e *BadID3v2VersionError) Error() string {
	return fmt.Sprintf("ID3v2: found an invalid version (v%d.%d), expected any major revision in: (2, 3, 4)",
		e.Major, e.Minor)
}

// BadAtomError is returned for malformed MP4 atoms.
type BadAtomError struct {
	Reason string
	Offset int64
}

func (e *BadAtomError) Error() string {
	return fmt.Sprintf("MP4 atom at offset %d: %s", e.Offset, e.Reason)
}

// TooMuchDataError is returned when a value can't be represented in its encoded form.
type TooMuchDataError struct {
	Value uint64
	Limit uint64
}

func (e *TooMuchDataError) Error() string {
	return fmt.Sprintf("attempted to encode %d, which exceeds the limit of %d", e.Value, e.Limit)
}

// IOError wraps a failure of the underlying stream: truncation, seek or read errors.
type IOError struct {
	Err    error
	What   string
	Offset int64
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s at offset %d: %v", e.What, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered during inspection.
//
// Warnings indicate problems that don't prevent structures from being decoded
// but may indicate corrupted or unusual data. Examples include:
//   - An ID3v2 header that failed to parse ahead of valid audio frames
//   - A malformed Xing/VBRI header (duration falls back to CBR estimation)
//   - An atom child that could not be read inside a container
type Warning struct {
	// Stage where the warning occurred
	Stage string // "id3v2", "frame", "vbr", "properties", "atoms"

	// Warning message
	Message string

	// Stream offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// UnsupportedWriteError indicates a structure can't be encoded as requested.
type UnsupportedWriteError struct {
	Reason string
	Format Format
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.Format)
}
