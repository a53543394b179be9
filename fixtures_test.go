package audiocodec_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/audiocodec"
)

// Stereo MPEG-1 Layer III, 128 kbps, 44.1 kHz: 417-byte frames, side
// information ending 36 bytes in.
const (
	testFrameWord = 0xFFFB9000
	testFrameLen  = 417
)

type mp3Fixture struct {
	id3v2Size  uint32 // 0 = no ID3v2 tag
	xingFlags  uint32 // 0 = no Xing header
	frames     int
	id3v1      bool
	frameWord  uint32
	leadingPad int // junk between tag and first frame
}

// createTestMP3 builds an MPEG stream from f.
func createTestMP3(t testing.TB, f mp3Fixture) []byte {
	t.Helper()

	buf := &bytes.Buffer{}

	if f.id3v2Size > 0 {
		h := audiocodec.ID3v2Header{Version: audiocodec.ID3v24, Size: f.id3v2Size}
		if _, err := audiocodec.WriteID3v2Header(buf, h); err != nil {
			t.Fatal(err)
		}
		buf.Write(make([]byte, f.id3v2Size))
	}

	buf.Write(make([]byte, f.leadingPad))

	word := f.frameWord
	if word == 0 {
		word = testFrameWord
	}

	for i := 0; i < f.frames; i++ {
		frame := make([]byte, testFrameLen)
		binary.BigEndian.PutUint32(frame, word)

		if i == 0 && f.xingFlags != 0 {
			copy(frame[36:], "Xing")
			binary.BigEndian.PutUint32(frame[40:], f.xingFlags)
			binary.BigEndian.PutUint32(frame[44:], uint32(f.frames))
			binary.BigEndian.PutUint32(frame[48:], uint32(f.frames*testFrameLen))
		}

		buf.Write(frame)
	}

	if f.id3v1 {
		tag := make([]byte, 128)
		copy(tag, "TAG")
		buf.Write(tag)
	}

	return buf.Bytes()
}

// atom builds an atom with the given identifier and body.
func atom(t testing.TB, ident string, body ...[]byte) []byte {
	t.Helper()

	id, err := audiocodec.ParseAtomIdent(ident)
	if err != nil {
		t.Fatal(err)
	}

	payload := bytes.Join(body, nil)
	buf := &bytes.Buffer{}
	if _, err := audiocodec.WriteAtomHeader(buf, id, uint64(len(payload))); err != nil {
		t.Fatal(err)
	}
	buf.Write(payload)

	return buf.Bytes()
}

// createTestM4A builds ftyp, a moov tree with one freeform item, and mdat.
func createTestM4A(t testing.TB) []byte {
	t.Helper()

	item := atom(t, "----:com.apple.iTunes:ISRC",
		atom(t, "data", []byte{0, 0, 0, 1, 0, 0, 0, 0}, []byte("US1234567890")))
	title := atom(t, "©nam", atom(t, "data", []byte{0, 0, 0, 1, 0, 0, 0, 0}, []byte("Title")))

	moov := atom(t, "moov",
		atom(t, "mvhd", make([]byte, 100)),
		atom(t, "udta",
			atom(t, "meta", []byte{0, 0, 0, 0},
				atom(t, "ilst", title, item))))

	return bytes.Join([][]byte{
		atom(t, "ftyp", []byte("M4A "), []byte{0, 0, 0, 0}, []byte("M4A isom")),
		moov,
		atom(t, "mdat", make([]byte, 64)),
	}, nil)
}

// writeTempFile writes data to a file named name in a fresh temporary directory.
func writeTempFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}
