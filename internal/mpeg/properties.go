package mpeg

import (
	"time"

	"github.com/simonhull/audiocodec/internal/types"
)

// Properties are the stream properties derived from the first frame.
type Properties struct {
	Duration       time.Duration
	OverallBitrate uint32 // kbps, over the whole file
	AudioBitrate   uint32 // kbps, over the audio stream
	SampleRate     uint32
	Channels       uint8
	Version        Version
	Layer          Layer
	ChannelMode    ChannelMode
	VBR            bool // Duration came from a Xing/Info/VBRI header
}

// ReadProperties computes properties from the first frame and its optional
// VBR header. audioLen is the number of bytes from the first frame to the end
// of the audio stream; fileLen is the full file size.
//
// A frame using the reserved sample rate index fails here with a
// *types.CorruptedFileError.
func ReadProperties(first Frame, vbr *VBRHeader, audioLen, fileLen int64) (Properties, error) {
	h := first.Header
	if h.ReservedSampleRate || h.SampleRate == 0 {
		return Properties{}, &types.CorruptedFileError{
			Format: types.FormatMPEG,
			Reason: "invalid sample rate",
			Offset: first.Offset,
		}
	}

	props := Properties{
		SampleRate:  h.SampleRate,
		Channels:    h.Channels,
		Version:     h.Version,
		Layer:       h.Layer,
		ChannelMode: h.ChannelMode,
	}

	switch {
	case vbr != nil && vbr.Frames > 0 && vbr.Size > 0 && h.Samples > 0:
		props.VBR = true
		props.Duration = samplesDuration(uint64(h.Samples)*uint64(vbr.Frames), h.SampleRate)
		if ms := uint64(props.Duration.Milliseconds()); ms > 0 {
			props.AudioBitrate = uint32(uint64(vbr.Size) * 8 / ms)
			props.OverallBitrate = uint32(uint64(max(fileLen, 0)) * 8 / ms)
		}

	case h.Bitrate > 0 && audioLen > 0:
		props.AudioBitrate = h.Bitrate
		// bits / kbps = ms
		ms := uint64(audioLen) * 8 / uint64(h.Bitrate)
		props.Duration = time.Duration(ms) * time.Millisecond
		if ms > 0 {
			props.OverallBitrate = uint32(uint64(max(fileLen, 0)) * 8 / ms)
		}
	}

	return props, nil
}

// samplesDuration converts a sample count to a duration without overflowing
// for any 32-bit frame count.
func samplesDuration(samples uint64, sampleRate uint32) time.Duration {
	sr := uint64(sampleRate)
	secs := samples / sr
	rem := samples % sr
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/sr)
}
