package mpeg

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/simonhull/audiocodec/internal/types"
)

// Frame is a located frame header.
type Frame struct {
	Offset int64 // Absolute stream offset of the sync word
	Header Header
}

// FindOptions bounds FindFirstFrame.
type FindOptions struct {
	// MaxSearch is the maximum number of bytes scanned for a valid frame.
	// Zero means no limit.
	MaxSearch int64
}

// ErrNoFrame is returned when no decodable frame header is found.
var ErrNoFrame = errors.New("no valid MPEG frame found")

// FindFirstFrame scans r from its current position for the first frame sync
// followed by a decodable header. Sync patterns whose header fails to decode
// are skipped. On success r is positioned after the frame header.
func FindFirstFrame(r io.ReadSeeker, opts FindOptions) (Frame, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Frame{}, &types.IOError{What: "stream position", Err: err}
	}

	pos := start
	var word [HeaderSize]byte

	for {
		var src io.Reader = r
		if opts.MaxSearch > 0 {
			remaining := start + opts.MaxSearch - pos
			if remaining < HeaderSize {
				return Frame{}, ErrNoFrame
			}
			src = io.LimitReader(r, remaining)
		}

		off, found, err := SearchFrameSync(bufio.NewReader(src))
		if err != nil {
			return Frame{}, err
		}
		if !found {
			return Frame{}, ErrNoFrame
		}

		candidate := pos + off
		if _, err := r.Seek(candidate, io.SeekStart); err != nil {
			return Frame{}, &types.IOError{What: "seek to frame", Offset: candidate, Err: err}
		}

		n, err := io.ReadFull(r, word[:])
		if err != nil {
			if n < HeaderSize && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
				return Frame{}, ErrNoFrame
			}
			return Frame{}, &types.IOError{What: "frame header", Offset: candidate, Err: err}
		}

		header, err := DecodeHeader(binary.BigEndian.Uint32(word[:]))
		if err == nil {
			return Frame{Offset: candidate, Header: header}, nil
		}

		// False sync, resume one byte further.
		pos = candidate + 1
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return Frame{}, &types.IOError{What: "seek past false sync", Offset: pos, Err: err}
		}
	}
}
