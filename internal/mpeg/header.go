// Package mpeg decodes MPEG audio frame headers, locates frames in a byte
// stream and reads the Xing/Info/VBRI headers embedded in the first frame.
package mpeg

import (
	"errors"
	"io"

	"github.com/simonhull/audiocodec/internal/types"
)

// HeaderSize is the size of an MPEG audio frame header.
const HeaderSize = 4

// Version is the MPEG audio version.
type Version uint8

const (
	Version1 Version = iota
	Version2
	Version2_5
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version2_5:
		return "MPEG-2.5"
	default:
		return "Unknown"
	}
}

// Layer is the MPEG audio layer.
type Layer uint8

const (
	Layer1 Layer = iota + 1
	Layer2
	Layer3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "Layer I"
	case Layer2:
		return "Layer II"
	case Layer3:
		return "Layer III"
	default:
		return "Unknown"
	}
}

// ChannelMode is the channel layout of a frame.
type ChannelMode uint8

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel // Two independent mono channels
	SingleChannel
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "Stereo"
	case JointStereo:
		return "Joint Stereo"
	case DualChannel:
		return "Dual Channel"
	case SingleChannel:
		return "Single Channel"
	default:
		return "Unknown"
	}
}

// Emphasis is a rarely used decoder hint that the audio must be de-emphasized.
type Emphasis uint8

const (
	EmphasisNone Emphasis = iota
	EmphasisMS5015 // 50/15 ms
	EmphasisReserved
	EmphasisCCITJ17 // CCIT J.17
)

func (e Emphasis) String() string {
	switch e {
	case EmphasisNone:
		return "None"
	case EmphasisMS5015:
		return "50/15 ms"
	case EmphasisReserved:
		return "Reserved"
	case EmphasisCCITJ17:
		return "CCIT J.17"
	default:
		return "Unknown"
	}
}

// Header is a decoded MPEG audio frame header.
type Header struct {
	// SampleRate in Hz. Zero when the header uses the reserved sample rate
	// index, see ReservedSampleRate.
	SampleRate uint32
	Channels   uint8

	// Len is the frame length in bytes including the header. Zero when
	// the sample rate is reserved.
	Len uint32

	// DataStart is the offset from the frame start to the byte following
	// the side information.
	DataStart uint32

	Samples uint16 // Samples per frame
	Bitrate uint32 // kbps, 0 for free format and bad indexes

	Version     Version
	Layer       Layer
	ChannelMode ChannelMode

	// ModeExtension is only set for JointStereo.
	ModeExtension *uint8

	Copyright bool
	Original  bool
	Emphasis  Emphasis
	Padding   bool
	Protected bool // A 16-bit CRC follows the header

	// ReservedSampleRate records that the sample rate index was 3. The
	// error is reported when properties are computed, not here.
	ReservedSampleRate bool
}

// VerifyFrameSync reports whether b0 and b1 start with the 11-bit frame sync.
func VerifyFrameSync(b0, b1 byte) bool {
	return b0 == 0xFF && b1>>5 == 0b111
}

// SearchFrameSync scans r byte by byte for the first frame sync and returns
// its offset relative to the position r started at. The scan is byte
// aligned. found is false if r is exhausted without a match.
//
// r is consumed up to and including the second sync byte. The scan has no
// limit of its own; wrap r in an io.LimitReader to bound it.
func SearchFrameSync(r io.Reader) (offset int64, found bool, err error) {
	next := byteReader(r)

	prev, err := next()
	if err != nil {
		return 0, false, syncError(err, 0)
	}

	for index := int64(0); ; index++ {
		b, err := next()
		if err != nil {
			return 0, false, syncError(err, index+1)
		}
		if VerifyFrameSync(prev, b) {
			return index, true, nil
		}
		prev = b
	}
}

// maxEmptyReads bounds consecutive (0, nil) reads, matching bufio.
const maxEmptyReads = 100

// byteReader returns a function reading one byte at a time from r without
// buffering ahead of the caller.
func byteReader(r io.Reader) func() (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte
	}

	var buf [1]byte
	return func() (byte, error) {
		for range maxEmptyReads {
			n, err := r.Read(buf[:])
			if n == 1 {
				return buf[0], nil
			}
			if err != nil {
				return 0, err
			}
		}
		return 0, io.ErrNoProgress
	}
}

// syncError maps the end of the stream to "not found" and wraps anything else.
func syncError(err error, offset int64) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return &types.IOError{What: "frame sync", Offset: offset, Err: err}
}

// DecodeHeader decodes a 32-bit big-endian frame header. The frame sync
// bits are not checked.
func DecodeHeader(word uint32) (Header, error) {
	var h Header

	switch (word >> 19) & 0b11 {
	case 0:
		h.Version = Version2_5
	case 2:
		h.Version = Version2
	case 3:
		h.Version = Version1
	default:
		return Header{}, &types.CorruptedFileError{
			Format: types.FormatMPEG,
			Reason: "frame header has an invalid version",
		}
	}

	switch (word >> 17) & 0b11 {
	case 1:
		h.Layer = Layer3
	case 2:
		h.Layer = Layer2
	case 3:
		h.Layer = Layer1
	default:
		return Header{}, &types.CorruptedFileError{
			Format: types.FormatMPEG,
			Reason: "frame header uses a reserved layer",
		}
	}

	vc := versionClass(h.Version)
	li := layerIndex(h.Layer)

	h.Protected = (word>>16)&1 == 0
	h.Bitrate = bitrates[vc][li][(word>>12)&0xF]

	if idx := (word >> 10) & 0b11; idx == 3 {
		h.ReservedSampleRate = true
	} else {
		h.SampleRate = sampleRates[sampleRateRow(h.Version)][idx]
	}

	var padding uint32
	if (word>>9)&1 == 1 {
		h.Padding = true
		padding = paddingSizes[li]
	}

	h.ChannelMode = ChannelMode((word >> 6) & 0b11)
	if h.ChannelMode == JointStereo {
		ext := uint8((word >> 4) & 0b11)
		h.ModeExtension = &ext
	}

	h.Copyright = (word>>3)&1 == 1
	h.Original = (word>>2)&1 == 1
	h.Emphasis = Emphasis(word & 0b11)

	h.DataStart = sideInformationSizes[vc][channelModeIndex(h.ChannelMode)] + HeaderSize
	h.Samples = samplesPerFrame[li][vc]

	if h.SampleRate != 0 {
		switch h.Layer {
		case Layer1:
			h.Len = (h.Bitrate*12000/h.SampleRate + padding) * 4
		default:
			h.Len = h.Bitrate*144000/h.SampleRate + padding
		}
	}

	h.Channels = 2
	if h.ChannelMode == SingleChannel {
		h.Channels = 1
	}

	return h, nil
}
