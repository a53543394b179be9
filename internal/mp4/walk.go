package mp4

import (
	"fmt"
	"io"
	"iter"

	"github.com/simonhull/audiocodec/internal/types"
)

// containers lists atoms whose body is a sequence of child atoms.
var containers = map[[4]byte]bool{
	{'m', 'o', 'o', 'v'}: true, // Movie container
	{'u', 'd', 't', 'a'}: true, // User data
	{'m', 'e', 't', 'a'}: true, // Metadata container, full box
	{'i', 'l', 's', 't'}: true, // iTunes metadata list
	{'t', 'r', 'a', 'k'}: true, // Track container
	{'m', 'd', 'i', 'a'}: true, // Media container
	{'m', 'i', 'n', 'f'}: true, // Media information
	{'s', 't', 'b', 'l'}: true, // Sample table
	{'e', 'd', 't', 's'}: true, // Edit list container
	{'d', 'i', 'n', 'f'}: true, // Data information
}

// IsContainer reports whether the atom holds child atoms.
func (a AtomInfo) IsContainer() bool {
	return containers[a.Ident.Fourcc]
}

// ChildrenOffset returns where the first child of a container starts. meta
// is a full box: a version and flags word precedes its children.
func (a AtomInfo) ChildrenOffset() uint64 {
	if a.Ident.Fourcc == [4]byte{'m', 'e', 't', 'a'} {
		return a.DataOffset() + 4
	}
	return a.DataOffset()
}

// Atoms yields the sibling atoms in [start, end). Iteration stops after the
// first error, which is yielded with a zero AtomInfo.
func Atoms(r io.ReadSeeker, start, end uint64) iter.Seq2[AtomInfo, error] {
	return func(yield func(AtomInfo, error) bool) {
		offset := start

		// Trailing bytes too short for a header are ignored.
		for offset+HeaderSize <= end {
			if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
				yield(AtomInfo{}, &types.IOError{What: "seek to atom", Offset: int64(offset), Err: err})
				return
			}

			info, err := ReadAtomInfo(r)
			if err != nil {
				yield(AtomInfo{}, err)
				return
			}

			if info.End() > end || info.End() <= offset {
				yield(AtomInfo{}, &types.BadAtomError{
					Reason: fmt.Sprintf("%s atom of length %d extends past its parent (ends at %d)", info.Ident, info.Len, end),
					Offset: int64(info.Start),
				})
				return
			}

			if !yield(info, nil) {
				return
			}

			offset = info.End()
		}
	}
}

// Children yields the atoms directly inside parent.
func Children(r io.ReadSeeker, parent AtomInfo) iter.Seq2[AtomInfo, error] {
	return Atoms(r, parent.ChildrenOffset(), parent.End())
}

// Find returns the first atom in [start, end) with the given fourcc.
func Find(r io.ReadSeeker, start, end uint64, fourcc string) (AtomInfo, bool, error) {
	want := FourCC(fourcc).Fourcc
	for info, err := range Atoms(r, start, end) {
		if err != nil {
			return AtomInfo{}, false, err
		}
		if info.Ident.Fourcc == want {
			return info, true, nil
		}
	}
	return AtomInfo{}, false, nil
}
