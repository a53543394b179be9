package audiocodec

import (
	"io"

	"github.com/simonhull/audiocodec/internal/id3v2"
)

// ID3v2Header is a decoded ID3v2 tag header.
type ID3v2Header = id3v2.Header

// ID3v2Version is the ID3v2 major version.
type ID3v2Version = id3v2.Version

// ID3v2TagFlags are the flags of the header and extended header.
type ID3v2TagFlags = id3v2.TagFlags

// TagRestrictions is the ID3v2.4 tag restrictions record.
type TagRestrictions = id3v2.TagRestrictions

const (
	ID3v22 = id3v2.V2
	ID3v23 = id3v2.V3
	ID3v24 = id3v2.V4
)

// ID3v2HeaderSize is the size of the fixed ID3v2 header.
const ID3v2HeaderSize = id3v2.HeaderSize

// ReadID3v2Header reads an ID3v2 header, and its extended header if
// flagged, from r. Tag restrictions are only decoded with WithRestrictions.
func ReadID3v2Header(r io.Reader, opts ...Option) (ID3v2Header, error) {
	o := applyOptions(opts)
	return id3v2.ReadHeader(r, id3v2.ReadOptions{Restrictions: o.restrictions})
}

// WriteID3v2Header encodes h and returns the number of bytes written.
func WriteID3v2Header(w io.Writer, h ID3v2Header) (int64, error) {
	return id3v2.WriteHeader(w, h)
}

// Unsynch decodes a synchsafe integer.
func Unsynch(n uint32) uint32 {
	return id3v2.Unsynch(n)
}

// Synch encodes n as a synchsafe integer. It fails with a
// *TooMuchDataError if n doesn't fit in 28 bits.
func Synch(n uint32) (uint32, error) {
	return id3v2.Synch(n)
}

// Unsynchronise applies the ID3v2 unsynchronisation scheme to tag content.
func Unsynchronise(content []byte) []byte {
	return id3v2.Unsynchronise(content)
}

// Resynchronise reverses Unsynchronise.
func Resynchronise(content []byte) []byte {
	return id3v2.Resynchronise(content)
}
