// Package binary provides bounds-checked big-endian reading and writing for
// length-prefixed container formats.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrOutOfBounds is wrapped by every error caused by a read past the end of
// the underlying data.
var ErrOutOfBounds = errors.New("out of bounds")

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// Remaining returns how many bytes can be read starting at off.
func (sr *SafeReader) Remaining(off int64) int64 {
	if off < 0 || off >= sr.size {
		return 0
	}
	return sr.size - off
}

// ReadAt fills b from the given offset. what names the field being read and
// ends up in the error message.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off > sr.size || (off == sr.size && len(b) > 0) {
		return fmt.Errorf("%s: offset %d %w (size: %d) while reading %s",
			sr.path, off, ErrOutOfBounds, sr.size, what)
	}

	if int64(len(b)) > sr.size-off {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed size %d while reading %s: %w",
			sr.path, len(b), off, sr.size, what, ErrOutOfBounds)
	}

	if len(b) == 0 {
		return nil
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// ReadUint32 reads a big-endian uint32 at the given offset.
func (sr *SafeReader) ReadUint32(off int64, what string) (uint32, error) {
	var buf [4]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadBytes reads n bytes at the given offset into a freshly allocated slice.
//
// The bounds are checked before allocating, so a bogus length read from a
// corrupted header never causes a large allocation.
func (sr *SafeReader) ReadBytes(off int64, n int64, what string) ([]byte, error) {
	if n < 0 || n > sr.Remaining(off) {
		return nil, fmt.Errorf("%s: read of %d bytes at offset %d would exceed size %d while reading %s: %w",
			sr.path, n, off, sr.size, what, ErrOutOfBounds)
	}

	buf := make([]byte, n)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// Uint32 reads a big-endian uint32 and advances the offset.
func (r *Reader) Uint32(what string) (uint32, error) {
	val, err := r.SafeReader.ReadUint32(r.offset, what)
	if err != nil {
		return 0, err
	}
	r.offset += 4
	return val, nil
}

// Array4 reads exactly four bytes and advances the offset.
func (r *Reader) Array4(what string) ([4]byte, error) {
	var out [4]byte
	if err := r.SafeReader.ReadAt(out[:], r.offset, what); err != nil {
		return out, err
	}
	r.offset += 4
	return out, nil
}

// Bytes reads n bytes and advances the offset.
func (r *Reader) Bytes(n int64, what string) ([]byte, error) {
	buf, err := r.SafeReader.ReadBytes(r.offset, n, what)
	if err != nil {
		return nil, err
	}
	r.offset += n
	return buf, nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes left after the current offset.
func (r *Reader) Remaining() int64 {
	return r.SafeReader.Remaining(r.offset)
}
