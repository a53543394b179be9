package audiocodec

import (
	"io"
	"iter"

	"github.com/simonhull/audiocodec/internal/mp4"
)

// AtomInfo is a decoded MP4 atom header.
type AtomInfo = mp4.AtomInfo

// AtomIdent identifies an atom by fourcc, or by mean and name for
// freeform "----" atoms.
type AtomIdent = mp4.Ident

// FourCC returns the identifier for a four character code.
func FourCC(s string) AtomIdent {
	return mp4.FourCC(s)
}

// FreeformIdent returns a freeform identifier.
func FreeformIdent(mean, name string) AtomIdent {
	return mp4.Freeform(mean, name)
}

// ParseAtomIdent parses "----:mean:name" or a four character code.
func ParseAtomIdent(s string) (AtomIdent, error) {
	return mp4.ParseIdent(s)
}

// ReadAtomInfo reads the atom header at the current position of r.
func ReadAtomInfo(r io.ReadSeeker) (AtomInfo, error) {
	return mp4.ReadAtomInfo(r)
}

// WriteAtomHeader writes an atom header for a body of bodyLen bytes.
func WriteAtomHeader(w io.Writer, ident AtomIdent, bodyLen uint64) (int64, error) {
	return mp4.WriteAtomHeader(w, ident, bodyLen)
}

// Atoms yields the sibling atoms in [start, end).
func Atoms(r io.ReadSeeker, start, end uint64) iter.Seq2[AtomInfo, error] {
	return mp4.Atoms(r, start, end)
}

// AtomChildren yields the atoms directly inside parent.
func AtomChildren(r io.ReadSeeker, parent AtomInfo) iter.Seq2[AtomInfo, error] {
	return mp4.Children(r, parent)
}

// FindAtom returns the first atom in [start, end) with the given fourcc.
func FindAtom(r io.ReadSeeker, start, end uint64, fourcc string) (AtomInfo, bool, error) {
	return mp4.Find(r, start, end, fourcc)
}
