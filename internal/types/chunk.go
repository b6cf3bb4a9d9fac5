package types

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/crc32"

	"github.com/simonhull/pngme/internal/binary"
)

// Chunk layout sizes.
const (
	ChunkHeaderSize = 8 // length + type
	ChunkCRCSize    = 4
	MinChunkSize    = ChunkHeaderSize + ChunkCRCSize

	// MaxChunkLength is the largest data length representable in the length field.
	MaxChunkLength = math.MaxUint32
)

// Chunk is a validated PNG chunk: a type and opaque data. The CRC is always
// derived from the two, never stored.
//
// See http://www.libpng.org/pub/png/spec/1.2/PNG-Structure.html
type Chunk struct {
	typ  ChunkType
	data []byte
}

// NewChunk creates a chunk from a type and data. The data is copied.
//
// NewChunk panics if data is longer than MaxChunkLength, since such a chunk
// cannot be represented on the wire.
func NewChunk(t ChunkType, data []byte) *Chunk {
	if uint64(len(data)) > MaxChunkLength {
		panic(fmt.Sprintf("pngme: chunk data length %d exceeds %d", len(data), uint64(MaxChunkLength)))
	}
	return &Chunk{
		typ:  t,
		data: bytes.Clone(data),
	}
}

// Type returns the chunk type.
func (c *Chunk) Type() ChunkType {
	return c.typ
}

// Data returns the chunk data. The returned slice must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// EncodedLen returns the size of the chunk on the wire.
func (c *Chunk) EncodedLen() int {
	return MinChunkSize + len(c.data)
}

// CRC returns the CRC-32 (ISO-HDLC, as used by zlib and PNG) of the chunk
// type followed by the data.
func (c *Chunk) CRC() uint32 {
	return chunkCRC(c.typ, c.data)
}

func chunkCRC(t ChunkType, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(t.b[:])
	h.Write(data)
	return h.Sum32()
}

// DataAsString returns the data as text. It fails with an
// *InvalidEncodingError if the data is not valid UTF-8.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", &InvalidEncodingError{Type: c.typ, Offset: firstInvalidUTF8(c.data)}
	}
	return string(c.data), nil
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// WriteTo writes the chunk in wire order: big-endian length, type, data,
// big-endian CRC.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	c.encode(sw)
	return sw.Offset(), sw.Err()
}

func (c *Chunk) encode(sw *binary.SafeWriter) {
	sw.WriteUint32(c.Length())
	sw.WriteBytes(c.typ.b[:])
	sw.WriteBytes(c.data)
	sw.WriteUint32(c.CRC())
}

// Bytes returns the chunk in wire order.
func (c *Chunk) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, c.EncodedLen()))
	c.WriteTo(buf) //nolint:errcheck // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// ParseChunk decodes one chunk from the start of b.
//
// The stages run in order and the first failure ends the parse:
//
//	size   < 12 bytes                    -> *TooShortError
//	type   fails ChunkTypeFromBytes      -> *InvalidChunkTypeError
//	data   length + CRC exceed the input -> *TruncatedPayloadError
//	crc    stored != computed            -> *CRCMismatchError
//
// Bytes after the chunk are ignored; use EncodedLen to advance past it.
func ParseChunk(b []byte) (*Chunk, error) {
	if len(b) < MinChunkSize {
		return nil, &TooShortError{Size: len(b)}
	}

	sr := binary.NewSafeReader(bytes.NewReader(b), int64(len(b)), "chunk")
	r := binary.NewReader(sr, 0)

	length, err := r.Uint32("chunk length")
	if err != nil {
		return nil, err
	}

	raw, err := r.Array4("chunk type")
	if err != nil {
		return nil, err
	}
	typ, err := ChunkTypeFromBytes(raw)
	if err != nil {
		return nil, err
	}

	if int64(length)+ChunkCRCSize > r.Remaining() {
		return nil, &TruncatedPayloadError{
			Type:      typ,
			Declared:  length,
			Available: int(r.Remaining()),
		}
	}

	data, err := r.Bytes(int64(length), "chunk data")
	if err != nil {
		return nil, err
	}

	stored, err := r.Uint32("chunk CRC")
	if err != nil {
		return nil, err
	}

	if computed := chunkCRC(typ, data); computed != stored {
		return nil, &CRCMismatchError{Type: typ, Stored: stored, Computed: computed}
	}

	return &Chunk{typ: typ, data: data}, nil
}

// String returns a multi-line summary of the chunk for diagnostics.
func (c *Chunk) String() string {
	var sb strings.Builder
	sb.WriteString("Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.typ)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.CRC())
	sb.WriteString("}\n")
	return sb.String()
}
