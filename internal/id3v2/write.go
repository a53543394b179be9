package id3v2

import (
	"bytes"
	"io"

	binutil "github.com/simonhull/audiocodec/internal/binary"
	"github.com/simonhull/audiocodec/internal/types"
)

// WriteHeader encodes h the way ReadHeader decodes it and returns the number
// of bytes written.
//
// An extended header is written only for ID3v2.4 tags carrying
// restrictions; h.ExtendedSize is recomputed and h.Size must cover it. CRC
// data is not retained by the reader, so headers flagged with CRC can't be
// written.
func WriteHeader(w io.Writer, h Header) (int64, error) {
	ext, err := extendedHeaderBytes(h)
	if err != nil {
		return 0, err
	}

	if h.Size == 0 || uint64(len(ext)) >= uint64(h.Size) {
		return 0, &types.CorruptedFileError{
			Format: types.FormatID3v2,
			Reason: "tag has an invalid size",
		}
	}

	size, err := Synch(h.Size)
	if err != nil {
		return 0, err
	}

	var flags byte
	if h.Flags.Unsynchronisation {
		flags |= flagUnsynchronisation
	}
	if len(ext) > 0 {
		flags |= flagExtendedHeader
	}
	if h.Version.modern() && h.Flags.Experimental {
		flags |= flagExperimental
	}
	if h.Version.modern() && h.Flags.Footer {
		flags |= flagFooter
	}

	sw := binutil.NewSafeWriter(w)
	if err := sw.WriteString("ID3"); err != nil {
		return sw.Offset(), err
	}
	if err := sw.WriteBytes([]byte{byte(h.Version), h.Revision, flags}); err != nil {
		return sw.Offset(), err
	}
	if err := binutil.Write[uint32](sw, size); err != nil {
		return sw.Offset(), err
	}
	if err := sw.WriteBytes(ext); err != nil {
		return sw.Offset(), err
	}

	return sw.Offset(), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := WriteHeader(buf, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// extendedHeaderBytes builds the extended header for h, or nil if none is needed.
func extendedHeaderBytes(h Header) ([]byte, error) {
	switch h.Version {
	case V2, V3, V4:
	default:
		return nil, &types.BadID3v2VersionError{Major: byte(h.Version), Minor: h.Revision}
	}

	if h.Flags.CRC {
		return nil, &types.UnsupportedWriteError{
			Format: types.FormatID3v2,
			Reason: "extended header CRC data is not retained",
		}
	}

	if h.Flags.Restrictions == nil {
		return nil, nil
	}

	if h.Version != V4 {
		return nil, &types.UnsupportedWriteError{
			Format: types.FormatID3v2,
			Reason: "tag restrictions require ID3v2.4",
		}
	}

	// size (4), flag count (1), flags (1), restrictions length (1), restrictions (1)
	const extSize = 8
	size, err := Synch(extSize)
	if err != nil {
		return nil, err
	}

	return []byte{
		byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size),
		0x01,
		extFlagRestrictions,
		0x01,
		h.Flags.Restrictions.Byte(),
	}, nil
}
