// Package binary provides type-safe binary stream primitives with offset tracking.
package binary

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/simonhull/audiocodec/internal/types"
)

// Reader wraps an io.Reader, tracking the stream offset and turning
// short reads into *types.IOError values with context.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader creates a new Reader. offset is the position of r within the
// stream and is only used for error messages.
func NewReader(r io.Reader, offset int64) *Reader {
	return &Reader{
		r:      r,
		offset: offset,
	}
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadFull fills b completely or fails with an *types.IOError.
func (r *Reader) ReadFull(b []byte, what string) error {
	n, err := io.ReadFull(r.r, b)
	r.offset += int64(n)
	if err != nil {
		// A clean EOF before the first byte is still a truncation here.
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &types.IOError{What: what, Offset: r.offset - int64(n), Err: err}
	}
	return nil
}

// Skip discards n bytes. The bytes are read rather than seeked over so a
// truncated stream is always reported.
func (r *Reader) Skip(n int64, what string) error {
	if n <= 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, r.r, n)
	r.offset += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &types.IOError{What: what, Offset: r.offset, Err: err}
	}
	return nil
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// decodeBE converts a big-endian buffer of sizeOf[T] bytes to T.
func decodeBE[T uint8 | uint16 | uint32 | uint64](buf []byte) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(binary.BigEndian.Uint16(buf))
	case uint32:
		return T(binary.BigEndian.Uint32(buf))
	default:
		return T(binary.BigEndian.Uint64(buf))
	}
}

// ReadValue reads a big-endian value of type T and advances the offset.
// T must be uint8, uint16, uint32, or uint64.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	buf := make([]byte, sizeOf[T]())
	if err := r.ReadFull(buf, what); err != nil {
		var zero T
		return zero, err
	}
	return decodeBE[T](buf), nil
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads exactly n bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	buf := make([]byte, n)
	if err := cr.Reader.ReadFull(buf, what); err != nil {
		cr.err = err
		return nil
	}

	return buf
}

// Discard skips n bytes, accumulating any error.
func (cr *ChainReader) Discard(n int64, what string) {
	if cr.err != nil {
		return
	}
	cr.err = cr.Reader.Skip(n, what)
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
