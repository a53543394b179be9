package mp4

import (
	"io"
	"math"
	"unicode/utf8"

	binutil "github.com/simonhull/audiocodec/internal/binary"
	"github.com/simonhull/audiocodec/internal/types"
)

// WriteAtomHeader writes the header of an atom whose body is bodyLen bytes
// and returns the number of bytes written. The 64-bit length form is used
// when the total length doesn't fit in 32 bits. Freeform identifiers are
// followed by their mean and name children, which count toward the length.
func WriteAtomHeader(w io.Writer, ident Ident, bodyLen uint64) (int64, error) {
	var children uint64
	if ident.IsFreeform() {
		if !utf8.ValidString(ident.Mean) || !utf8.ValidString(ident.Name) {
			return 0, &types.UnsupportedWriteError{
				Format: types.FormatMP4,
				Reason: "freeform mean and name must be UTF-8",
			}
		}
		for _, s := range []string{ident.Mean, ident.Name} {
			if uint64(len(s)) > math.MaxUint32-freeformChildSize {
				return 0, &types.TooMuchDataError{Value: uint64(len(s)), Limit: math.MaxUint32 - freeformChildSize}
			}
		}
		children = 2*freeformChildSize + uint64(len(ident.Mean)) + uint64(len(ident.Name))
	}

	if bodyLen > math.MaxUint64-ExtendedHeaderSize-children {
		return 0, &types.TooMuchDataError{Value: bodyLen, Limit: math.MaxUint64 - ExtendedHeaderSize - children}
	}

	sw := binutil.NewSafeWriter(w)

	total := HeaderSize + children + bodyLen
	if total > math.MaxUint32 {
		total = ExtendedHeaderSize + children + bodyLen
		if err := binutil.Write[uint32](sw, 1); err != nil {
			return sw.Offset(), err
		}
		if err := sw.WriteBytes(ident.Fourcc[:]); err != nil {
			return sw.Offset(), err
		}
		if err := binutil.Write[uint64](sw, total); err != nil {
			return sw.Offset(), err
		}
	} else {
		if err := binutil.Write[uint32](sw, uint32(total)); err != nil {
			return sw.Offset(), err
		}
		if err := sw.WriteBytes(ident.Fourcc[:]); err != nil {
			return sw.Offset(), err
		}
	}

	if ident.IsFreeform() {
		if err := writeFreeformChunk(sw, "mean", ident.Mean); err != nil {
			return sw.Offset(), err
		}
		if err := writeFreeformChunk(sw, "name", ident.Name); err != nil {
			return sw.Offset(), err
		}
	}

	return sw.Offset(), nil
}

func writeFreeformChunk(sw *binutil.SafeWriter, fourcc, value string) error {
	if err := binutil.Write[uint32](sw, uint32(freeformChildSize+len(value))); err != nil {
		return err
	}
	if err := sw.WriteString(fourcc); err != nil {
		return err
	}
	// Version and flags
	if err := binutil.Write[uint32](sw, 0); err != nil {
		return err
	}
	return sw.WriteString(value)
}
