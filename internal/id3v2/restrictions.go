package id3v2

// TagSizeRestriction limits the number of frames and the total tag size.
type TagSizeRestriction uint8

const (
	// TagSize128Frames1MB allows no more than 128 frames and 1 MB total tag size.
	TagSize128Frames1MB TagSizeRestriction = iota
	// TagSize64Frames128KB allows no more than 64 frames and 128 KB total tag size.
	TagSize64Frames128KB
	// TagSize32Frames40KB allows no more than 32 frames and 40 KB total tag size.
	TagSize32Frames40KB
	// TagSize32Frames4KB allows no more than 32 frames and 4 KB total tag size.
	TagSize32Frames4KB
)

// TextSizeRestriction limits the length of every text field.
type TextSizeRestriction uint8

const (
	TextSizeUnrestricted TextSizeRestriction = iota
	TextSize1024
	TextSize128
	TextSize30
)

// ImageSizeRestriction limits embedded picture dimensions.
type ImageSizeRestriction uint8

const (
	ImageSizeUnrestricted ImageSizeRestriction = iota
	// ImageSize256 allows pictures up to 256x256.
	ImageSize256
	// ImageSize64 allows pictures up to 64x64.
	ImageSize64
	// ImageSizeExactly64 requires pictures of exactly 64x64, unless required otherwise.
	ImageSizeExactly64
)

// TagRestrictions is the ID3v2.4 extended header restrictions record,
// packed on disk as a single %ppqrrstt byte.
type TagRestrictions struct {
	Size          TagSizeRestriction
	TextEncoding  bool // Only ISO-8859-1 or UTF-8
	TextFieldSize TextSizeRestriction
	ImageEncoding bool // Only PNG or JPEG
	ImageSize     ImageSizeRestriction
}

// RestrictionsFromByte unpacks a restrictions byte.
func RestrictionsFromByte(b byte) TagRestrictions {
	return TagRestrictions{
		Size:          TagSizeRestriction((b >> 6) & 0x03),
		TextEncoding:  b&0x20 != 0,
		TextFieldSize: TextSizeRestriction((b >> 3) & 0x03),
		ImageEncoding: b&0x04 != 0,
		ImageSize:     ImageSizeRestriction(b & 0x03),
	}
}

// Byte packs the restrictions back into their on-disk form.
func (r TagRestrictions) Byte() byte {
	b := byte(r.Size&0x03)<<6 | byte(r.TextFieldSize&0x03)<<3 | byte(r.ImageSize&0x03)
	if r.TextEncoding {
		b |= 0x20
	}
	if r.ImageEncoding {
		b |= 0x04
	}
	return b
}
