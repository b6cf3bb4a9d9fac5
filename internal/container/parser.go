// Package container reads and writes whole PNG datastreams, one chunk at a
// time, on top of the chunk codec in internal/types.
package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/pngme/internal/binary"
	"github.com/simonhull/pngme/internal/debug"
	"github.com/simonhull/pngme/internal/types"
)

// Options controls how strictly a datastream is read.
type Options struct {
	// MaxChunkSize rejects chunks declaring more data bytes than this before
	// reading them. 0 means no limit beyond the size of the input.
	MaxChunkSize int64

	// StrictOrdering requires IHDR first, exactly one IEND, and IEND last.
	StrictOrdering bool
}

// Parse reads a PNG datastream of the given size from r.
//
// Every chunk goes through types.ParseChunk. The first chunk that fails stops
// the parse with a *types.CorruptedFileError carrying its index and offset.
func Parse(r io.ReaderAt, size int64, path string, opts Options) (*types.PNG, error) {
	sr := binary.NewSafeReader(r, size, path)

	sig := make([]byte, len(types.Signature))
	if err := sr.ReadAt(sig, 0, "PNG signature"); err != nil {
		return nil, &types.UnsupportedFormatError{Path: path, Reason: "file too small for PNG signature"}
	}
	if !bytes.Equal(sig, types.Signature[:]) {
		return nil, &types.UnsupportedFormatError{Path: path, Reason: "missing PNG signature"}
	}

	var chunks []*types.Chunk
	offset := int64(len(types.Signature))
	for offset < size {
		c, err := readChunk(sr, offset, opts)
		if err != nil {
			debug.Log("%s: chunk %d at offset %d: %v", path, len(chunks), offset, err)
			return nil, &types.CorruptedFileError{
				Path:   path,
				Offset: offset,
				Index:  len(chunks),
				Err:    err,
			}
		}

		chunks = append(chunks, c)
		offset += int64(c.EncodedLen())
	}

	debug.Log("%s: read %d chunks (%d bytes)", path, len(chunks), size)

	if opts.StrictOrdering {
		if err := checkOrdering(path, chunks); err != nil {
			return nil, err
		}
	}

	return types.NewPNG(chunks), nil
}

// readChunk reads the chunk starting at offset. Only the bytes the chunk
// claims (capped at what is left of the input) are read, so a corrupted length
// field cannot trigger a large allocation.
func readChunk(sr *binary.SafeReader, offset int64, opts Options) (*types.Chunk, error) {
	n := sr.Remaining(offset)
	if n >= types.MinChunkSize {
		length, err := sr.ReadUint32(offset, "chunk length")
		if err != nil {
			return nil, err
		}
		if opts.MaxChunkSize > 0 && int64(length) > opts.MaxChunkSize {
			return nil, fmt.Errorf("chunk declares %d data bytes, limit is %d", length, opts.MaxChunkSize)
		}
		n = min(n, types.MinChunkSize+int64(length))
	}

	buf, err := sr.ReadBytes(offset, n, "chunk")
	if err != nil {
		return nil, err
	}
	return types.ParseChunk(buf)
}

func checkOrdering(path string, chunks []*types.Chunk) error {
	fail := func(i int, reason string) error {
		return &types.CorruptedFileError{
			Path:   path,
			Offset: chunkOffset(chunks, i),
			Index:  i,
			Reason: reason,
		}
	}

	if len(chunks) == 0 || chunks[0].Type() != types.ChunkTypeIHDR {
		return fail(0, "first chunk must be IHDR")
	}
	for i, c := range chunks {
		if c.Type() == types.ChunkTypeIEND && i != len(chunks)-1 {
			return fail(i+1, "chunk after IEND")
		}
	}
	if last := len(chunks) - 1; chunks[last].Type() != types.ChunkTypeIEND {
		return fail(last, "last chunk must be IEND")
	}
	return nil
}

func chunkOffset(chunks []*types.Chunk, index int) int64 {
	off := int64(len(types.Signature))
	for _, c := range chunks[:min(index, len(chunks))] {
		off += int64(c.EncodedLen())
	}
	return off
}
