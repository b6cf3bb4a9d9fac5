package pngme

import (
	"github.com/simonhull/pngme/internal/codec"
	"github.com/simonhull/pngme/internal/types"
)

// Sentinel errors for use with errors.Is. Each typed error below matches
// exactly one of them.
var (
	ErrInvalidChunkType = types.ErrInvalidChunkType
	ErrInvalidLength    = types.ErrInvalidLength
	ErrTooShort         = types.ErrTooShort
	ErrTruncatedPayload = types.ErrTruncatedPayload
	ErrCRCMismatch      = types.ErrCRCMismatch
	ErrInvalidEncoding  = types.ErrInvalidEncoding
	ErrChunkNotFound    = types.ErrChunkNotFound

	// ErrMessageTooLarge is returned by DecodeMessage when the decoded
	// message exceeds the WithMaxMessageSize limit.
	ErrMessageTooLarge = codec.ErrTooLarge
)

// InvalidChunkTypeError is an alias to types.InvalidChunkTypeError.
type InvalidChunkTypeError = types.InvalidChunkTypeError

// InvalidLengthError is an alias to types.InvalidLengthError.
type InvalidLengthError = types.InvalidLengthError

// TooShortError is an alias to types.TooShortError.
type TooShortError = types.TooShortError

// TruncatedPayloadError is an alias to types.TruncatedPayloadError.
type TruncatedPayloadError = types.TruncatedPayloadError

// CRCMismatchError is an alias to types.CRCMismatchError.
type CRCMismatchError = types.CRCMismatchError

// InvalidEncodingError is an alias to types.InvalidEncodingError.
type InvalidEncodingError = types.InvalidEncodingError

// ChunkNotFoundError is an alias to types.ChunkNotFoundError.
type ChunkNotFoundError = types.ChunkNotFoundError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError
