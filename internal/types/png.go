package types

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/pngme/internal/binary"
)

// Signature is the 8-byte header every PNG datastream starts with.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG is a PNG datastream: the signature followed by an ordered list of
// chunks. Chunk payloads are not interpreted.
type PNG struct {
	chunks []*Chunk
}

// NewPNG creates a PNG from chunks, in order.
func NewPNG(chunks []*Chunk) *PNG {
	return &PNG{chunks: append([]*Chunk(nil), chunks...)}
}

// ParsePNG decodes a whole PNG datastream held in memory.
//
// Validation of each chunk is delegated to ParseChunk. The first failing
// chunk aborts the parse with a *CorruptedFileError wrapping the chunk error.
func ParsePNG(b []byte) (*PNG, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, &UnsupportedFormatError{Path: "<memory>", Reason: "missing PNG signature"}
	}

	p := &PNG{}
	off := len(Signature)
	for off < len(b) {
		c, err := ParseChunk(b[off:])
		if err != nil {
			return nil, &CorruptedFileError{
				Path:   "<memory>",
				Offset: int64(off),
				Index:  len(p.chunks),
				Err:    err,
			}
		}
		p.chunks = append(p.chunks, c)
		off += c.EncodedLen()
	}
	return p, nil
}

// Header returns the PNG signature.
func (p *PNG) Header() [8]byte {
	return Signature
}

// Chunks returns the chunks in file order. The slice must not be modified.
func (p *PNG) Chunks() []*Chunk {
	return p.chunks
}

// ChunkByType returns the first chunk of type t, or nil.
func (p *PNG) ChunkByType(t ChunkType) *Chunk {
	for _, c := range p.chunks {
		if c.Type() == t {
			return c
		}
	}
	return nil
}

// AppendChunk adds c to the datastream. If the last chunk is IEND, c is
// inserted before it so decoders still see it; otherwise it goes at the end.
func (p *PNG) AppendChunk(c *Chunk) {
	n := len(p.chunks)
	if n > 0 && p.chunks[n-1].Type() == ChunkTypeIEND {
		iend := p.chunks[n-1]
		p.chunks = append(p.chunks[:n-1], c, iend)
		return
	}
	p.chunks = append(p.chunks, c)
}

// RemoveChunk removes and returns the first chunk of type t.
// It returns a *ChunkNotFoundError if there is none.
func (p *PNG) RemoveChunk(t ChunkType) (*Chunk, error) {
	for i, c := range p.chunks {
		if c.Type() == t {
			p.chunks = append(p.chunks[:i:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, &ChunkNotFoundError{Type: t}
}

// EncodedLen returns the size of the datastream on the wire.
func (p *PNG) EncodedLen() int64 {
	n := int64(len(Signature))
	for _, c := range p.chunks {
		n += int64(c.EncodedLen())
	}
	return n
}

// WriteTo writes the signature followed by every chunk.
func (p *PNG) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	sw.WriteBytes(Signature[:])
	for _, c := range p.chunks {
		if sw.Err() != nil {
			break
		}
		c.encode(sw)
	}
	return sw.Offset(), sw.Err()
}

// Bytes returns the whole datastream.
func (p *PNG) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, p.EncodedLen()))
	p.WriteTo(buf) //nolint:errcheck // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// String returns one line per chunk, for diagnostics.
func (p *PNG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PNG (%d chunks, %d bytes)\n", len(p.chunks), p.EncodedLen())
	for i, c := range p.chunks {
		fmt.Fprintf(&sb, "  [%d] %s length=%d crc=%d\n", i, c.Type(), c.Length(), c.CRC())
	}
	return sb.String()
}
