package id3v2

import "github.com/simonhull/audiocodec/internal/types"

// MaxSynchsafe is the largest value a 4-byte synchsafe integer can hold.
const MaxSynchsafe = 0x0FFFFFFF

// Unsynch decodes a synchsafe integer (7 bits per byte, top bit always zero).
func Unsynch(n uint32) uint32 {
	return n&0xFF | (n&0xFF00)>>1 | (n&0xFF0000)>>2 | (n&0xFF000000)>>3
}

// Synch encodes n as a synchsafe integer.
//
// Values above MaxSynchsafe fail with *types.TooMuchDataError, since their
// encoding would set the top bit of the first byte. 0x10000000 itself is
// rejected too: its encoding is 0x80000000.
func Synch(n uint32) (uint32, error) {
	if n > MaxSynchsafe {
		return 0, &types.TooMuchDataError{Value: uint64(n), Limit: MaxSynchsafe}
	}

	return n&0x7F | (n&0x3F80)<<1 | (n&0x1FC000)<<2 | (n&0xFE00000)<<3, nil
}

// Unsynchronise applies the ID3v2 unsynchronisation scheme: a 0x00 is
// inserted after every 0xFF that is followed by 0x00, by a byte with its top
// three bits set, or by nothing at all.
func Unsynchronise(content []byte) []byte {
	out := make([]byte, 0, len(content)+len(content)/8)
	for i, b := range content {
		out = append(out, b)
		if b != 0xFF {
			continue
		}
		if i+1 == len(content) || content[i+1] == 0x00 || content[i+1]&0xE0 == 0xE0 {
			out = append(out, 0x00)
		}
	}
	return out
}

// Resynchronise reverses Unsynchronise by dropping the 0x00 that follows each 0xFF.
func Resynchronise(content []byte) []byte {
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		out = append(out, content[i])
		if content[i] == 0xFF && i+1 < len(content) && content[i+1] == 0x00 {
			i++
		}
	}
	return out
}
