package mpeg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/simonhull/audiocodec/internal/types"
)

func frameBytes(word uint32, size int) []byte {
	buf := make([]byte, size)
	binary.BigEndian.PutUint32(buf, word)
	return buf
}

func TestFindFirstFrame(t *testing.T) {
	// A false sync with a reserved layer precedes the real frame.
	data := []byte{0x00, 0x12, 0xFF, 0xE1, 0x00, 0x00}
	data = append(data, frameBytes(0xFFFB9000, 417)...)

	r := bytes.NewReader(data)
	frame, err := FindFirstFrame(r, FindOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame.Offset != 6 {
		t.Errorf("offset = %d, expected 6", frame.Offset)
	}
	if frame.Header.Bitrate != 128 {
		t.Errorf("bitrate = %d, expected 128", frame.Header.Bitrate)
	}

	pos, _ := r.Seek(0, io.SeekCurrent)
	if pos != 6+HeaderSize {
		t.Errorf("reader at %d, expected %d", pos, 6+HeaderSize)
	}
}

func TestFindFirstFrame_FromPosition(t *testing.T) {
	data := make([]byte, 20)
	data = append(data, frameBytes(0xFFFB9000, 100)...)

	r := bytes.NewReader(data)
	r.Seek(10, io.SeekStart)

	frame, err := FindFirstFrame(r, FindOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Offset != 20 {
		t.Errorf("offset = %d, expected absolute offset 20", frame.Offset)
	}
}

func TestFindFirstFrame_MaxSearch(t *testing.T) {
	data := make([]byte, 100)
	data = append(data, frameBytes(0xFFFB9000, 417)...)

	tests := []struct {
		name      string
		maxSearch int64
		wantErr   bool
	}{
		{"unbounded", 0, false},
		{"large enough", 200, false},
		{"too small", 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := FindFirstFrame(bytes.NewReader(data), FindOptions{MaxSearch: tt.maxSearch})
			if tt.wantErr {
				if !errors.Is(err, ErrNoFrame) {
					t.Errorf("expected ErrNoFrame, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if frame.Offset != 100 {
				t.Errorf("offset = %d, expected 100", frame.Offset)
			}
		})
	}
}

func TestFindFirstFrame_NoFrame(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"junk", bytes.Repeat([]byte{0x55}, 256)},
		{"only false syncs", bytes.Repeat([]byte{0xFF, 0xE1}, 64)},
		{"truncated header", []byte{0x00, 0xFF, 0xFB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindFirstFrame(bytes.NewReader(tt.data), FindOptions{})
			if !errors.Is(err, ErrNoFrame) {
				t.Errorf("expected ErrNoFrame, got %v", err)
			}
		})
	}
}

func TestReadProperties_VBR(t *testing.T) {
	header, _ := DecodeHeader(0xFFFB9000)
	vbr := &VBRHeader{Kind: KindXing, Frames: 1000, Size: 400000}

	props, err := ReadProperties(Frame{Header: header}, vbr, 400000, 401000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000 frames * 1152 samples / 44100 Hz
	expected := 26*time.Second + 122448979*time.Nanosecond
	if props.Duration != expected {
		t.Errorf("duration = %v, expected %v", props.Duration, expected)
	}
	if !props.VBR {
		t.Error("expected VBR")
	}
	if props.AudioBitrate != 122 {
		t.Errorf("audio bitrate = %d, expected 122", props.AudioBitrate)
	}
	if props.SampleRate != 44100 || props.Channels != 2 {
		t.Errorf("sample rate/channels = %d/%d", props.SampleRate, props.Channels)
	}
}

func TestReadProperties_CBR(t *testing.T) {
	header, _ := DecodeHeader(0xFFFB9000)

	props, err := ReadProperties(Frame{Header: header}, nil, 1600000, 1601000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if props.Duration != 100*time.Second {
		t.Errorf("duration = %v, expected 100s", props.Duration)
	}
	if props.VBR {
		t.Error("expected CBR")
	}
	if props.AudioBitrate != 128 || props.OverallBitrate != 128 {
		t.Errorf("bitrates = %d/%d, expected 128/128", props.AudioBitrate, props.OverallBitrate)
	}
}

func TestReadProperties_EmptyVBRFallsBack(t *testing.T) {
	header, _ := DecodeHeader(0xFFFB9000)
	vbr := &VBRHeader{Kind: KindInfo}

	props, err := ReadProperties(Frame{Header: header}, vbr, 1600000, 1600000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if props.VBR || props.Duration != 100*time.Second {
		t.Errorf("expected CBR fallback, got %+v", props)
	}
}

func TestReadProperties_ReservedSampleRate(t *testing.T) {
	header, err := DecodeHeader(0xFFFB9C00)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ReadProperties(Frame{Offset: 42, Header: header}, nil, 1000, 1000)

	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("expected *types.CorruptedFileError, got %v", err)
	}
	if corrupted.Reason != "invalid sample rate" || corrupted.Offset != 42 {
		t.Errorf("got %+v", corrupted)
	}
}

func TestSamplesDuration_LargeFrameCount(t *testing.T) {
	d := samplesDuration(uint64(1152)*0xFFFFFFFF, 8000)
	if d <= 0 {
		t.Fatalf("duration overflowed: %v", d)
	}
}
