// Package id3v2 decodes and encodes the ID3v2 tag header, its optional
// extended header, and the synchsafe integers both use.
package id3v2

import (
	"encoding/binary"
	"fmt"
	"io"

	binutil "github.com/simonhull/audiocodec/internal/binary"
	"github.com/simonhull/audiocodec/internal/types"
)

// HeaderSize is the size of the fixed ID3v2 header (and of the v2.4 footer).
const HeaderSize = 10

// Version is the ID3v2 major version.
type Version uint8

const (
	V2 Version = 2 // ID3v2.2
	V3 Version = 3 // ID3v2.3
	V4 Version = 4 // ID3v2.4
)

func (v Version) String() string {
	return fmt.Sprintf("ID3v2.%d", uint8(v))
}

// modern reports whether the version defines the experimental, footer and
// extended header flags.
func (v Version) modern() bool {
	return v == V3 || v == V4
}

// Header flag bits.
const (
	flagUnsynchronisation = 0x80
	flagExtendedHeader    = 0x40 // ID3v2.2: compression
	flagExperimental      = 0x20
	flagFooter            = 0x10
)

// Extended header flag bits.
const (
	extFlagCRC          = 0x20
	extFlagRestrictions = 0x10
)

// TagFlags are the flags of the header and extended header.
type TagFlags struct {
	Unsynchronisation bool
	Experimental      bool // Always false for ID3v2.2
	Footer            bool // Always false for ID3v2.2
	CRC               bool

	// Restrictions is nil unless the extended header carries a restrictions
	// record and restrictions decoding was enabled.
	Restrictions *TagRestrictions
}

// Header is a decoded ID3v2 header.
type Header struct {
	Version  Version
	Revision byte // Minor version, informational
	Flags    TagFlags

	// Size of the tag excluding the 10-byte header (and footer), including
	// the extended header.
	Size uint32

	// ExtendedSize is the declared extended header size, 0 when absent.
	ExtendedSize uint32
}

// TotalSize returns the number of bytes the tag occupies in the stream.
func (h Header) TotalSize() int64 {
	total := int64(HeaderSize) + int64(h.Size)
	if h.Flags.Footer {
		total += HeaderSize
	}
	return total
}

// ReadOptions toggles optional header capabilities.
type ReadOptions struct {
	// Restrictions enables decoding of the v2.4 tag restrictions record.
	Restrictions bool
}

// ReadHeader reads and validates an ID3v2 header from r, including the
// extended header when one is flagged. r is left positioned after the last
// byte consumed.
func ReadHeader(r io.Reader, opts ReadOptions) (Header, error) {
	br := binutil.NewReader(r, 0)

	buf := make([]byte, HeaderSize)
	if err := br.ReadFull(buf, "ID3v2 header"); err != nil {
		return Header{}, err
	}

	if string(buf[0:3]) != "ID3" {
		return Header{}, &types.FakeTagError{Format: types.FormatID3v2}
	}

	var version Version
	switch buf[3] {
	case 2:
		version = V2
	case 3:
		version = V3
	case 4:
		version = V4
	default:
		return Header{}, &types.BadID3v2VersionError{Major: buf[3], Minor: buf[4]}
	}

	flags := buf[5]

	// ID3v2.2 never defined a compression scheme; such tags must be ignored.
	if version == V2 && flags&flagExtendedHeader != 0 {
		return Header{}, &types.CorruptedFileError{
			Format: types.FormatID3v2,
			Reason: "encountered a compressed ID3v2.2 tag",
			Offset: 5,
		}
	}

	header := Header{
		Version:  version,
		Revision: buf[4],
		Flags: TagFlags{
			Unsynchronisation: flags&flagUnsynchronisation != 0,
			Experimental:      version.modern() && flags&flagExperimental != 0,
			Footer:            version.modern() && flags&flagFooter != 0,
		},
		Size: Unsynch(binary.BigEndian.Uint32(buf[6:10])),
	}

	if version.modern() && flags&flagExtendedHeader != 0 {
		if err := readExtendedHeader(br, &header, opts); err != nil {
			return Header{}, err
		}
	}

	if header.ExtendedSize >= header.Size || header.Size == 0 {
		return Header{}, &types.CorruptedFileError{
			Format: types.FormatID3v2,
			Reason: fmt.Sprintf("tag has an invalid size (size: %d, extended header: %d)", header.Size, header.ExtendedSize),
		}
	}

	return header, nil
}

// readExtendedHeader reads the extended header fields the header exposes.
// Only the CRC and restrictions flags are of interest.
func readExtendedHeader(br *binutil.Reader, header *Header, opts ReadOptions) error {
	offset := br.Offset()
	cr := binutil.NewChainReader(br)

	header.ExtendedSize = Unsynch(binutil.ReadChained[uint32](cr, "extended header size"))
	if err := cr.Error(); err != nil {
		return err
	}

	if header.ExtendedSize < 6 {
		return &types.CorruptedFileError{
			Format: types.FormatID3v2,
			Reason: "found an extended header with an invalid size (< 6)",
			Offset: offset,
		}
	}

	// Number of flag bytes, always 1
	cr.Discard(1, "extended header flag count")
	extFlags := binutil.ReadChained[uint8](cr, "extended header flags")

	if extFlags&extFlagCRC != 0 {
		header.Flags.CRC = true
		// CRC data (5) and its length byte (1)
		cr.Discard(6, "extended header CRC")
	}

	if opts.Restrictions && extFlags&extFlagRestrictions != 0 {
		// Length byte, always 1
		cr.Discard(1, "restrictions length")
		b := binutil.ReadChained[uint8](cr, "tag restrictions")
		if cr.Error() == nil {
			restrictions := RestrictionsFromByte(b)
			header.Flags.Restrictions = &restrictions
		}
	}

	return cr.Error()
}
