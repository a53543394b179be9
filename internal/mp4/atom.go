// Package mp4 reads and writes MP4 atom (box) headers, including the
// freeform "----" identifier convention used by iTunes-style metadata.
package mp4

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	binutil "github.com/simonhull/audiocodec/internal/binary"
	"github.com/simonhull/audiocodec/internal/types"
)

// Header sizes in bytes.
const (
	HeaderSize         = 8  // length (4) + fourcc (4)
	ExtendedHeaderSize = 16 // plus a 64-bit length
	freeformChildSize  = 12 // length (4) + fourcc (4) + version/flags (4)
)

var freeformFourcc = [4]byte{'-', '-', '-', '-'}

// Ident identifies an atom. Most atoms use a four byte code; freeform atoms
// ("----") are instead named by their mean and name children.
type Ident struct {
	Fourcc [4]byte
	Mean   string // Reverse DNS namespace, freeform only
	Name   string // Key within Mean, freeform only
}

// FourCC returns the identifier for a four character code. Characters
// above 0x7F, such as the copyright sign of "©nam", are stored as single
// Latin-1 bytes.
func FourCC(s string) Ident {
	var id Ident
	i := 0
	for _, r := range s {
		if i == 4 {
			break
		}
		id.Fourcc[i] = byte(r)
		i++
	}
	return id
}

// Freeform returns a freeform identifier.
func Freeform(mean, name string) Ident {
	return Ident{Fourcc: freeformFourcc, Mean: mean, Name: name}
}

// IsFreeform reports whether the identifier is a "----" atom.
func (i Ident) IsFreeform() bool {
	return i.Fourcc == freeformFourcc
}

// String returns "----:mean:name" for freeform atoms and the four character
// code otherwise.
func (i Ident) String() string {
	if i.IsFreeform() {
		return "----:" + i.Mean + ":" + i.Name
	}

	var sb strings.Builder
	for _, b := range i.Fourcc {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// ParseIdent parses the output of Ident.String.
func ParseIdent(s string) (Ident, error) {
	if rest, ok := strings.CutPrefix(s, "----:"); ok {
		mean, name, ok := strings.Cut(rest, ":")
		if !ok {
			return Ident{}, fmt.Errorf("freeform identifier %q is missing a name", s)
		}
		return Freeform(mean, name), nil
	}

	if utf8.RuneCountInString(s) != 4 {
		return Ident{}, fmt.Errorf("identifier %q is not four characters", s)
	}
	for _, r := range s {
		if r > 0xFF {
			return Ident{}, fmt.Errorf("identifier %q has a character outside Latin-1", s)
		}
	}

	return FourCC(s), nil
}

// AtomInfo is a decoded atom header.
type AtomInfo struct {
	Start    uint64 // Stream offset of the length field
	Len      uint64 // Total length including the header
	Extended bool   // A 64-bit length follows the fourcc
	Ident    Ident
}

// HeaderSize returns the size of the length and fourcc fields. For freeform
// atoms the mean and name children follow it.
func (a AtomInfo) HeaderSize() uint64 {
	if a.Extended {
		return ExtendedHeaderSize
	}
	return HeaderSize
}

// DataOffset returns the stream offset of the atom's body.
func (a AtomInfo) DataOffset() uint64 {
	return a.Start + a.HeaderSize()
}

// DataSize returns the size of the atom's body.
func (a AtomInfo) DataSize() uint64 {
	if a.Len < a.HeaderSize() {
		return 0
	}
	return a.Len - a.HeaderSize()
}

// End returns the stream offset of the next sibling.
func (a AtomInfo) End() uint64 {
	return a.Start + a.Len
}

// ReadAtomInfo reads the atom header at the current position of r. Only
// the header is consumed (plus the mean and name children of freeform
// atoms); the caller seeks to End to reach the next sibling.
//
// A length field of 0 extends the atom to the end of the stream. A length
// field of 1 means a 64-bit length follows the fourcc.
func ReadAtomInfo(r io.ReadSeeker) (AtomInfo, error) {
	return readAtomInfo(r, true)
}

func readAtomInfo(r io.ReadSeeker, freeform bool) (AtomInfo, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return AtomInfo{}, &types.IOError{What: "atom position", Err: err}
	}

	cr := binutil.NewChainReader(binutil.NewReader(r, pos))
	rawLen := binutil.ReadChained[uint32](cr, "atom length")
	fourcc := cr.Bytes(4, "atom identifier")
	if err := cr.Error(); err != nil {
		return AtomInfo{}, err
	}

	info := AtomInfo{Start: uint64(pos)}
	copy(info.Ident.Fourcc[:], fourcc)

	switch rawLen {
	case 0:
		end, err := streamEnd(r)
		if err != nil {
			return AtomInfo{}, err
		}
		info.Len = uint64(end) - info.Start

	case 1:
		info.Extended = true
		info.Len = binutil.ReadChained[uint64](cr, "extended atom length")
		if err := cr.Error(); err != nil {
			return AtomInfo{}, err
		}
		if info.Len < ExtendedHeaderSize {
			return AtomInfo{}, &types.BadAtomError{
				Reason: fmt.Sprintf("found an invalid extended length (%d < 16)", info.Len),
				Offset: pos,
			}
		}

	default:
		if rawLen < HeaderSize {
			return AtomInfo{}, &types.BadAtomError{
				Reason: fmt.Sprintf("found an invalid length (%d < 8)", rawLen),
				Offset: pos,
			}
		}
		info.Len = uint64(rawLen)
	}

	if info.Len > math.MaxUint64-info.Start {
		return AtomInfo{}, &types.BadAtomError{
			Reason: fmt.Sprintf("found a length that overflows the stream offset (%d)", info.Len),
			Offset: pos,
		}
	}

	if freeform && info.Ident.IsFreeform() {
		if err := readFreeform(r, &info); err != nil {
			return AtomInfo{}, err
		}
	}

	return info, nil
}

// readFreeform reads the mean and name children of a "----" atom.
func readFreeform(r io.ReadSeeker, info *AtomInfo) error {
	mean, err := freeformChunk(r, "mean")
	if err != nil {
		return err
	}
	name, err := freeformChunk(r, "name")
	if err != nil {
		return err
	}

	info.Ident.Mean = mean
	info.Ident.Name = name

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return &types.IOError{What: "atom position", Err: err}
	}
	if uint64(pos) > info.End() {
		return &types.BadAtomError{
			Reason: "freeform identifier extends past its atom",
			Offset: int64(info.Start),
		}
	}

	return nil
}

func freeformChunk(r io.ReadSeeker, expected string) (string, error) {
	child, err := readAtomInfo(r, false)
	if err != nil {
		return "", err
	}

	if string(child.Ident.Fourcc[:]) != expected || child.Extended {
		return "", &types.BadAtomError{
			Reason: `found freeform identifier "----" with no trailing "mean" or "name" atoms`,
			Offset: int64(child.Start),
		}
	}

	if child.Len < freeformChildSize {
		return "", &types.BadAtomError{
			Reason: fmt.Sprintf("%s atom is too short (%d < 12)", expected, child.Len),
			Offset: int64(child.Start),
		}
	}

	br := binutil.NewReader(r, int64(child.Start)+HeaderSize)
	// Version (1) and flags (3)
	if err := br.Skip(4, expected+" version/flags"); err != nil {
		return "", err
	}

	size := child.Len - freeformChildSize
	end, err := streamEnd(r)
	if err != nil {
		return "", err
	}
	payloadAt := int64(child.Start) + freeformChildSize
	if size > uint64(end-payloadAt) {
		return "", &types.OutOfBoundsError{
			What:   expected + " payload",
			Offset: payloadAt,
			Length: size,
			Size:   end,
		}
	}

	payload := make([]byte, size)
	if err := br.ReadFull(payload, expected+" payload"); err != nil {
		return "", err
	}

	if !utf8.Valid(payload) {
		return "", &types.BadAtomError{
			Reason: "found a non UTF-8 string while reading freeform identifier",
			Offset: int64(child.Start),
		}
	}

	return string(payload), nil
}

// streamEnd returns the size of the stream without moving r.
func streamEnd(r io.Seeker) (int64, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, &types.IOError{What: "stream position", Err: err}
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, &types.IOError{What: "stream end", Offset: pos, Err: err}
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return 0, &types.IOError{What: "stream position", Offset: pos, Err: err}
	}
	return end, nil
}
