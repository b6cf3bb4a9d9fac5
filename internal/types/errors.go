package types

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Every typed error below matches its
// sentinel with errors.Is.
var (
	ErrInvalidChunkType = errors.New("invalid chunk type")
	ErrInvalidLength    = errors.New("invalid chunk type length")
	ErrTooShort         = errors.New("chunk too short")
	ErrTruncatedPayload = errors.New("truncated chunk payload")
	ErrCRCMismatch      = errors.New("chunk CRC mismatch")
	ErrInvalidEncoding  = errors.New("chunk data is not valid UTF-8")
	ErrChunkNotFound    = errors.New("chunk not found")
)

// InvalidChunkTypeError is returned when a chunk type contains a byte that is
// not an ASCII letter, or, for the byte array constructor, when the
// reserved bit is set.
type InvalidChunkTypeError struct {
	Bytes  []byte
	Reason string
}

func (e *InvalidChunkTypeError) Error() string {
	return fmt.Sprintf("invalid chunk type %q: %s", e.Bytes, e.Reason)
}

func (e *InvalidChunkTypeError) Is(target error) bool { return target == ErrInvalidChunkType }

// InvalidLengthError is returned when a chunk type string is not exactly four
// bytes long.
type InvalidLengthError struct {
	Text string
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid chunk type %q: length is %d bytes, expected 4", e.Text, len(e.Text))
}

func (e *InvalidLengthError) Is(target error) bool { return target == ErrInvalidLength }

// TooShortError is returned when a buffer cannot hold even an empty chunk.
type TooShortError struct {
	Size int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("chunk too short: got %d bytes, need at least %d", e.Size, MinChunkSize)
}

func (e *TooShortError) Is(target error) bool { return target == ErrTooShort }

// TruncatedPayloadError is returned when the declared data length, plus the
// CRC trailer, does not fit in the remaining bytes.
type TruncatedPayloadError struct {
	Type      ChunkType
	Declared  uint32
	Available int // bytes left after the 8-byte header
}

func (e *TruncatedPayloadError) Error() string {
	return fmt.Sprintf("truncated %s chunk: declares %d data bytes plus %d CRC bytes, only %d available",
		e.Type, e.Declared, ChunkCRCSize, e.Available)
}

func (e *TruncatedPayloadError) Is(target error) bool { return target == ErrTruncatedPayload }

// CRCMismatchError is returned when the stored CRC does not match the CRC
// computed over the chunk type and data. It signals corruption or tampering.
type CRCMismatchError struct {
	Type     ChunkType
	Stored   uint32
	Computed uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("%s chunk CRC mismatch: stored %d (0x%08x), computed %d (0x%08x)",
		e.Type, e.Stored, e.Stored, e.Computed, e.Computed)
}

func (e *CRCMismatchError) Is(target error) bool { return target == ErrCRCMismatch }

// InvalidEncodingError is returned when chunk data is requested as text but
// is not valid UTF-8.
type InvalidEncodingError struct {
	Type   ChunkType
	Offset int // first invalid byte within the data
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("%s chunk data is not valid UTF-8 (first invalid byte at %d)", e.Type, e.Offset)
}

func (e *InvalidEncodingError) Is(target error) bool { return target == ErrInvalidEncoding }

// ChunkNotFoundError is returned when a lookup by chunk type finds nothing.
type ChunkNotFoundError struct {
	Type ChunkType
}

func (e *ChunkNotFoundError) Error() string {
	return fmt.Sprintf("no %s chunk found", e.Type)
}

func (e *ChunkNotFoundError) Is(target error) bool { return target == ErrChunkNotFound }

// UnsupportedFormatError is returned when the input is not a PNG datastream.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when a chunk of a file fails validation.
// Processing of the file stops at the first such chunk.
type CorruptedFileError struct {
	Path   string
	Reason string
	Err    error // underlying chunk error, if any
	Offset int64
	Index  int // position of the failing chunk, counting from 0
}

func (e *CorruptedFileError) Error() string {
	reason := e.Reason
	if e.Err != nil {
		if reason != "" {
			reason += ": "
		}
		reason += e.Err.Error()
	}
	return fmt.Sprintf("%s: corrupted file at chunk %d (offset %d): %s", e.Path, e.Index, e.Offset, reason)
}

func (e *CorruptedFileError) Unwrap() error { return e.Err }
