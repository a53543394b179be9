package mpeg

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/simonhull/audiocodec/internal/types"
)

// VBRKind identifies which vendor header a VBRHeader came from.
type VBRKind uint8

const (
	KindXing VBRKind = iota
	KindInfo         // Xing layout, written by encoders for CBR streams
	KindVBRI
)

func (k VBRKind) String() string {
	switch k {
	case KindXing:
		return "Xing"
	case KindInfo:
		return "Info"
	case KindVBRI:
		return "VBRI"
	default:
		return "Unknown"
	}
}

const (
	xingMinSize = 16
	vbriMinSize = 32

	// vbrReadSize is how much of the first frame ReadVBRHeader inspects.
	vbrReadSize = vbriMinSize
)

// Xing flags for the frame count and byte count fields.
const xingRequiredFlags = 0x03

// VBRHeader carries the totals recorded by an encoder in the first frame.
type VBRHeader struct {
	Kind   VBRKind
	Frames uint32 // Number of frames in the stream
	Size   uint32 // Stream size in bytes
}

// DecodeVBR decodes a Xing, Info or VBRI header from buf, the bytes following
// the first frame's side information. It returns nil, nil when buf carries
// none of the known magics.
func DecodeVBR(buf []byte) (*VBRHeader, error) {
	if len(buf) < 4 {
		return nil, &types.IOError{What: "VBR header magic", Err: io.ErrUnexpectedEOF}
	}

	switch magic := string(buf[:4]); magic {
	case "Xing", "Info":
		if len(buf) < xingMinSize {
			return nil, &types.CorruptedFileError{
				Format: types.FormatMPEG,
				Reason: "Xing header has an invalid size (< 16)",
			}
		}

		flags := binary.BigEndian.Uint32(buf[4:8])
		if flags&xingRequiredFlags != xingRequiredFlags {
			return nil, &types.CorruptedFileError{
				Format: types.FormatMPEG,
				Reason: "Xing header is missing required flags (0x0001 and 0x0002)",
			}
		}

		kind := KindXing
		if magic == "Info" {
			kind = KindInfo
		}

		return &VBRHeader{
			Kind:   kind,
			Frames: binary.BigEndian.Uint32(buf[8:12]),
			Size:   binary.BigEndian.Uint32(buf[12:16]),
		}, nil

	case "VBRI":
		if len(buf) < vbriMinSize {
			return nil, &types.CorruptedFileError{
				Format: types.FormatMPEG,
				Reason: "VBRI header has an invalid size (< 32)",
			}
		}

		// Version (2), delay (2) and quality (2) are skipped.
		return &VBRHeader{
			Kind:   KindVBRI,
			Size:   binary.BigEndian.Uint32(buf[10:14]),
			Frames: binary.BigEndian.Uint32(buf[14:18]),
		}, nil

	default:
		return nil, nil
	}
}

// ReadVBRHeader reads the bytes following the side information of f and
// decodes them with DecodeVBR. A frame too short to hold a magic yields
// nil, nil.
func ReadVBRHeader(r io.ReadSeeker, f Frame) (*VBRHeader, error) {
	offset := f.Offset + int64(f.Header.DataStart)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, &types.IOError{What: "seek to VBR header", Offset: offset, Err: err}
	}

	buf := make([]byte, vbrReadSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, &types.IOError{What: "VBR header", Offset: offset, Err: err}
	}

	if n < 4 {
		return nil, nil
	}

	return DecodeVBR(buf[:n])
}
