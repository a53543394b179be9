package mpeg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/audiocodec/internal/types"
)

// createXing builds a Xing or Info header with the given flags and totals.
func createXing(magic string, flags, frames, size uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(magic)
	binary.Write(buf, binary.BigEndian, flags)
	binary.Write(buf, binary.BigEndian, frames)
	binary.Write(buf, binary.BigEndian, size)
	return buf.Bytes()
}

// createVBRI builds a 32-byte VBRI header.
func createVBRI(size, frames uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("VBRI")
	buf.Write([]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x4B})
	binary.Write(buf, binary.BigEndian, size)
	binary.Write(buf, binary.BigEndian, frames)
	buf.Write(make([]byte, 32-buf.Len()))
	return buf.Bytes()
}

func TestDecodeVBR_Xing(t *testing.T) {
	for _, magic := range []string{"Xing", "Info"} {
		vbr, err := DecodeVBR(createXing(magic, 0x0F, 1000, 400000))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", magic, err)
		}
		if vbr == nil {
			t.Fatalf("%s: expected header", magic)
		}

		if vbr.Kind.String() != magic {
			t.Errorf("kind = %v, expected %s", vbr.Kind, magic)
		}
		if vbr.Frames != 1000 || vbr.Size != 400000 {
			t.Errorf("%s: frames/size = %d/%d, expected 1000/400000", magic, vbr.Frames, vbr.Size)
		}
	}
}

func TestDecodeVBR_VBRI(t *testing.T) {
	vbr, err := DecodeVBR(createVBRI(500000, 1234))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vbr == nil {
		t.Fatal("expected header")
	}

	// Size precedes frames in VBRI.
	if vbr.Kind != KindVBRI || vbr.Size != 500000 || vbr.Frames != 1234 {
		t.Errorf("got %+v", *vbr)
	}
}

func TestDecodeVBR_Errors(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		reason string
	}{
		{"xing too short", append([]byte("Xing"), make([]byte, 6)...), "invalid size (< 16)"},
		{"xing no flags", createXing("Xing", 0x00, 1000, 400000), "missing required flags"},
		{"xing frames only", createXing("Xing", 0x01, 1000, 400000), "missing required flags"},
		{"info bytes only", createXing("Info", 0x02, 1000, 400000), "missing required flags"},
		{"vbri too short", createVBRI(1, 1)[:31], "invalid size (< 32)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vbr, err := DecodeVBR(tt.buf)
			if vbr != nil {
				t.Errorf("expected no header, got %+v", *vbr)
			}

			var corrupted *types.CorruptedFileError
			if !errors.As(err, &corrupted) {
				t.Fatalf("expected *types.CorruptedFileError, got %v", err)
			}
			if !strings.Contains(corrupted.Reason, tt.reason) {
				t.Errorf("reason = %q, expected to contain %q", corrupted.Reason, tt.reason)
			}
		})
	}
}

func TestDecodeVBR_UnknownMagic(t *testing.T) {
	vbr, err := DecodeVBR(make([]byte, 32))
	if err != nil || vbr != nil {
		t.Errorf("expected nil, nil for unknown magic, got %v, %v", vbr, err)
	}
}

func TestDecodeVBR_NoMagic(t *testing.T) {
	_, err := DecodeVBR([]byte("Xi"))

	var ioErr *types.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *types.IOError, got %v", err)
	}
}

func TestReadVBRHeader(t *testing.T) {
	// Stereo MPEG-1 frame: side information ends 36 bytes in.
	data := make([]byte, 36)
	binary.BigEndian.PutUint32(data, 0xFFFB9000)
	data = append(data, createXing("Xing", 0x03, 10, 4170)...)

	header, _ := DecodeHeader(0xFFFB9000)
	vbr, err := ReadVBRHeader(bytes.NewReader(data), Frame{Header: header})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vbr == nil || vbr.Frames != 10 || vbr.Size != 4170 {
		t.Errorf("got %+v", vbr)
	}
}

func TestReadVBRHeader_ShortFrame(t *testing.T) {
	data := make([]byte, 38)
	binary.BigEndian.PutUint32(data, 0xFFFB9000)

	header, _ := DecodeHeader(0xFFFB9000)
	vbr, err := ReadVBRHeader(bytes.NewReader(data), Frame{Header: header})
	if err != nil || vbr != nil {
		t.Errorf("expected nil, nil, got %v, %v", vbr, err)
	}
}
