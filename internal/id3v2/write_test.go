package id3v2

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/audiocodec/internal/types"
)

func TestWriteHeader_RoundTrip(t *testing.T) {
	restrictions := RestrictionsFromByte(0xA5)

	tests := []struct {
		name   string
		header Header
	}{
		{
			name:   "v2.2",
			header: Header{Version: V2, Size: 512, Flags: TagFlags{Unsynchronisation: true}},
		},
		{
			name:   "v2.3 experimental",
			header: Header{Version: V3, Revision: 1, Size: 2048, Flags: TagFlags{Experimental: true}},
		},
		{
			name:   "v2.4 footer",
			header: Header{Version: V4, Size: 0x0FFFFFFF, Flags: TagFlags{Footer: true}},
		},
		{
			name: "v2.4 restrictions",
			header: Header{
				Version:      V4,
				Size:         300,
				ExtendedSize: 8,
				Flags:        TagFlags{Restrictions: &restrictions},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.header.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary: %v", err)
			}

			got, err := ReadHeader(bytes.NewReader(data), ReadOptions{Restrictions: true})
			if err != nil {
				t.Fatalf("ReadHeader: %v", err)
			}

			if got.Version != tt.header.Version || got.Revision != tt.header.Revision {
				t.Errorf("version = %d.%d, want %d.%d", got.Version, got.Revision, tt.header.Version, tt.header.Revision)
			}
			if got.Size != tt.header.Size {
				t.Errorf("size = %d, want %d", got.Size, tt.header.Size)
			}
			if got.ExtendedSize != tt.header.ExtendedSize {
				t.Errorf("extended size = %d, want %d", got.ExtendedSize, tt.header.ExtendedSize)
			}

			gf, wf := got.Flags, tt.header.Flags
			if gf.Unsynchronisation != wf.Unsynchronisation || gf.Experimental != wf.Experimental || gf.Footer != wf.Footer {
				t.Errorf("flags = %+v, want %+v", gf, wf)
			}
			if (gf.Restrictions == nil) != (wf.Restrictions == nil) {
				t.Fatalf("restrictions = %v, want %v", gf.Restrictions, wf.Restrictions)
			}
			if wf.Restrictions != nil && *gf.Restrictions != *wf.Restrictions {
				t.Errorf("restrictions = %+v, want %+v", *gf.Restrictions, *wf.Restrictions)
			}
		})
	}
}

func TestWriteHeader_Bytes(t *testing.T) {
	h := Header{Version: V3, Size: 257}

	buf := &bytes.Buffer{}
	n, err := WriteHeader(buf, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != HeaderSize {
		t.Errorf("wrote %d bytes, want %d", n, HeaderSize)
	}

	want := []byte{'I', 'D', '3', 0x03, 0x00, 0x00, 0x00, 0x00, 0x02, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % X, want % X", buf.Bytes(), want)
	}
}

func TestWriteHeader_Errors(t *testing.T) {
	restrictions := TagRestrictions{}

	tests := []struct {
		name   string
		header Header
		check  func(error) bool
	}{
		{
			name:   "zero size",
			header: Header{Version: V4},
			check:  func(err error) bool { var e *types.CorruptedFileError; return errors.As(err, &e) },
		},
		{
			name:   "size too large",
			header: Header{Version: V4, Size: 0x10000000},
			check:  func(err error) bool { var e *types.TooMuchDataError; return errors.As(err, &e) },
		},
		{
			name:   "bad version",
			header: Header{Version: 7, Size: 10},
			check:  func(err error) bool { var e *types.BadID3v2VersionError; return errors.As(err, &e) },
		},
		{
			name:   "crc",
			header: Header{Version: V4, Size: 100, Flags: TagFlags{CRC: true}},
			check:  func(err error) bool { var e *types.UnsupportedWriteError; return errors.As(err, &e) },
		},
		{
			name:   "restrictions on v2.3",
			header: Header{Version: V3, Size: 100, Flags: TagFlags{Restrictions: &restrictions}},
			check:  func(err error) bool { var e *types.UnsupportedWriteError; return errors.As(err, &e) },
		},
		{
			name:   "size not covering extended header",
			header: Header{Version: V4, Size: 8, Flags: TagFlags{Restrictions: &restrictions}},
			check:  func(err error) bool { var e *types.CorruptedFileError; return errors.As(err, &e) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WriteHeader(&bytes.Buffer{}, tt.header)
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
