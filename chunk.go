package pngme

import (
	"github.com/simonhull/pngme/internal/types"
)

// ChunkType is a validated 4-byte PNG chunk type code.
// See types.ChunkType for the property bits.
type ChunkType = types.ChunkType

// Chunk is a validated PNG chunk.
type Chunk = types.Chunk

// PNG is a parsed PNG datastream: signature plus ordered chunks.
type PNG = types.PNG

// Chunk layout sizes, re-exported from internal/types.
const (
	ChunkHeaderSize = types.ChunkHeaderSize
	ChunkCRCSize    = types.ChunkCRCSize
	MinChunkSize    = types.MinChunkSize
	MaxChunkLength  = types.MaxChunkLength
)

// Signature is the 8-byte header every PNG datastream starts with.
var Signature = types.Signature

// Well-known chunk types.
var (
	ChunkTypeIHDR = types.ChunkTypeIHDR
	ChunkTypeIEND = types.ChunkTypeIEND
)

// ChunkTypeFromBytes validates b as a chunk type read from a file: all four
// bytes must be ASCII letters and the reserved bit must be clear.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	return types.ChunkTypeFromBytes(b)
}

// ParseChunkType builds a chunk type from a 4-character string. The reserved
// bit is not checked; use IsValid before writing the type to a file.
func ParseChunkType(s string) (ChunkType, error) {
	return types.ParseChunkType(s)
}

// MustParseChunkType is like ParseChunkType but panics on error.
func MustParseChunkType(s string) ChunkType {
	return types.MustParseChunkType(s)
}

// NewChunk creates a chunk from a type and data. The data is copied.
func NewChunk(t ChunkType, data []byte) *Chunk {
	return types.NewChunk(t, data)
}

// ParseChunk decodes one chunk from the start of b, ignoring trailing bytes.
func ParseChunk(b []byte) (*Chunk, error) {
	return types.ParseChunk(b)
}

// NewPNG creates a PNG datastream from chunks, in order.
func NewPNG(chunks []*Chunk) *PNG {
	return types.NewPNG(chunks)
}

// ParsePNG decodes a whole PNG datastream held in memory.
func ParsePNG(b []byte) (*PNG, error) {
	return types.ParsePNG(b)
}
