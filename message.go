package pngme

import (
	"fmt"

	"github.com/simonhull/pngme/internal/codec"
	"github.com/simonhull/pngme/internal/registry"
	"github.com/simonhull/pngme/internal/types"
)

// Message codec names.
const (
	CodecPlain = codec.Plain
	CodecZlib  = codec.Zlib
)

// DefaultMaxMessageSize bounds decoded messages unless WithMaxMessageSize
// says otherwise.
const DefaultMaxMessageSize = 64 << 20

// MessageOption configures EncodeMessage and DecodeMessage.
type MessageOption func(*messageOptions)

type messageOptions struct {
	codec   string
	maxSize int64
}

func defaultMessageOptions() *messageOptions {
	return &messageOptions{
		codec:   CodecPlain,
		maxSize: DefaultMaxMessageSize,
	}
}

// WithCodec selects how the message is stored in the chunk data:
// CodecPlain (the default) stores the UTF-8 bytes as-is, CodecZlib
// compresses them. Decoding must use the codec that encoded.
func WithCodec(name string) MessageOption {
	return func(o *messageOptions) {
		o.codec = name
	}
}

// WithMaxMessageSize limits the size of a decoded message in bytes.
// 0 disables the limit.
func WithMaxMessageSize(n int64) MessageOption {
	return func(o *messageOptions) {
		o.maxSize = n
	}
}

// Codecs returns the names of the available message codecs.
func Codecs() []string {
	return registry.Names()
}

func lookupCodec(name string) (registry.Codec, error) {
	c := registry.Get(name)
	if c == nil {
		return nil, fmt.Errorf("unknown codec %q (available: %v)", name, registry.Names())
	}
	return c, nil
}

// EncodeMessage builds a chunk of type t carrying msg.
//
// t must pass IsValid: a type parsed from a string with a lowercase third
// letter would produce a file no reader accepts, so it fails here with an
// *InvalidChunkTypeError instead.
func EncodeMessage(t ChunkType, msg string, opts ...MessageOption) (*Chunk, error) {
	options := defaultMessageOptions()
	for _, opt := range opts {
		opt(options)
	}

	if !t.IsValid() {
		b := t.Bytes()
		return nil, &types.InvalidChunkTypeError{
			Bytes:  b[:],
			Reason: "third byte must be uppercase (reserved bit set)",
		}
	}

	c, err := lookupCodec(options.codec)
	if err != nil {
		return nil, err
	}

	data, err := c.Encode([]byte(msg))
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	if uint64(len(data)) > MaxChunkLength {
		return nil, fmt.Errorf("encoded message is %d bytes, a chunk holds at most %d", len(data), uint64(MaxChunkLength))
	}

	return NewChunk(t, data), nil
}

// DecodeMessage recovers the message stored in c.
//
// Decoding fails with ErrMessageTooLarge past the WithMaxMessageSize limit,
// and with an *InvalidEncodingError if the result is not valid UTF-8.
func DecodeMessage(c *Chunk, opts ...MessageOption) (string, error) {
	options := defaultMessageOptions()
	for _, opt := range opts {
		opt(options)
	}

	dec, err := lookupCodec(options.codec)
	if err != nil {
		return "", err
	}

	msg, err := dec.Decode(c.Data(), options.maxSize)
	if err != nil {
		return "", fmt.Errorf("decode %s chunk: %w", c.Type(), err)
	}

	return NewChunk(c.Type(), msg).DataAsString()
}

// FindMessage decodes the message in the first chunk of type t.
// It returns a *ChunkNotFoundError if the file has no such chunk.
func (f *File) FindMessage(t ChunkType, opts ...MessageOption) (string, error) {
	c := f.ChunkByType(t)
	if c == nil {
		return "", &types.ChunkNotFoundError{Type: t}
	}
	return DecodeMessage(c, opts...)
}
