package audiocodec

import (
	"io"

	"github.com/simonhull/audiocodec/internal/mpeg"
)

// MPEG audio types.
type (
	MPEGHeader     = mpeg.Header
	MPEGVersion    = mpeg.Version
	MPEGLayer      = mpeg.Layer
	ChannelMode    = mpeg.ChannelMode
	Emphasis       = mpeg.Emphasis
	MPEGFrame      = mpeg.Frame
	VBRHeader      = mpeg.VBRHeader
	VBRKind        = mpeg.VBRKind
	MPEGProperties = mpeg.Properties
)

const (
	MPEGVersion1   = mpeg.Version1
	MPEGVersion2   = mpeg.Version2
	MPEGVersion2_5 = mpeg.Version2_5

	Layer1 = mpeg.Layer1
	Layer2 = mpeg.Layer2
	Layer3 = mpeg.Layer3

	Stereo        = mpeg.Stereo
	JointStereo   = mpeg.JointStereo
	DualChannel   = mpeg.DualChannel
	SingleChannel = mpeg.SingleChannel

	EmphasisNone     = mpeg.EmphasisNone
	EmphasisMS5015   = mpeg.EmphasisMS5015
	EmphasisReserved = mpeg.EmphasisReserved
	EmphasisCCITJ17  = mpeg.EmphasisCCITJ17

	VBRKindXing = mpeg.KindXing
	VBRKindInfo = mpeg.KindInfo
	VBRKindVBRI = mpeg.KindVBRI
)

// ErrNoFrame is returned when no decodable MPEG frame is found.
var ErrNoFrame = mpeg.ErrNoFrame

// VerifyFrameSync reports whether b0 and b1 start with the MPEG frame sync.
func VerifyFrameSync(b0, b1 byte) bool {
	return mpeg.VerifyFrameSync(b0, b1)
}

// SearchFrameSync returns the offset of the first frame sync in r.
func SearchFrameSync(r io.Reader) (int64, bool, error) {
	return mpeg.SearchFrameSync(r)
}

// DecodeMPEGHeader decodes a 32-bit MPEG audio frame header.
func DecodeMPEGHeader(word uint32) (MPEGHeader, error) {
	return mpeg.DecodeHeader(word)
}

// FindFirstFrame locates the first decodable frame from the current
// position of r, bounded by WithMaxSyncSearch.
func FindFirstFrame(r io.ReadSeeker, opts ...Option) (MPEGFrame, error) {
	o := applyOptions(opts)
	return mpeg.FindFirstFrame(r, mpeg.FindOptions{MaxSearch: o.maxSyncSearch})
}

// DecodeVBR decodes a Xing, Info or VBRI header. It returns nil, nil for
// unknown magics.
func DecodeVBR(buf []byte) (*VBRHeader, error) {
	return mpeg.DecodeVBR(buf)
}

// ReadVBRHeader reads the VBR header of frame f, if any.
func ReadVBRHeader(r io.ReadSeeker, f MPEGFrame) (*VBRHeader, error) {
	return mpeg.ReadVBRHeader(r, f)
}

// ReadMPEGProperties computes duration and bitrates from the first frame.
func ReadMPEGProperties(first MPEGFrame, vbr *VBRHeader, audioLen, fileLen int64) (MPEGProperties, error) {
	return mpeg.ReadProperties(first, vbr, audioLen, fileLen)
}
