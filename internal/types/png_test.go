package types

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testPNG() *PNG {
	return NewPNG([]*Chunk{
		NewChunk(MustParseChunkType("IHDR"), make([]byte, 13)),
		NewChunk(MustParseChunkType("tEXt"), []byte("Title\x00test")),
		NewChunk(MustParseChunkType("IDAT"), []byte{0x78, 0x9c, 0x01}),
		NewChunk(ChunkTypeIEND, nil),
	})
}

func chunkTypes(p *PNG) []string {
	var out []string
	for _, c := range p.Chunks() {
		out = append(out, c.Type().String())
	}
	return out
}

func TestParsePNG_RoundTrip(t *testing.T) {
	orig := testPNG()
	encoded := orig.Bytes()

	if int64(len(encoded)) != orig.EncodedLen() {
		t.Errorf("EncodedLen() = %d, len(Bytes()) = %d", orig.EncodedLen(), len(encoded))
	}
	if !bytes.HasPrefix(encoded, Signature[:]) {
		t.Fatal("encoded PNG does not start with the signature")
	}

	parsed, err := ParsePNG(encoded)
	if err != nil {
		t.Fatalf("ParsePNG failed: %v", err)
	}

	if diff := cmp.Diff(chunkTypes(orig), chunkTypes(parsed)); diff != "" {
		t.Errorf("chunk types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(encoded, parsed.Bytes()); diff != "" {
		t.Errorf("re-encoding mismatch (-want +got):\n%s", diff)
	}
	if parsed.Header() != Signature {
		t.Errorf("Header() = %v", parsed.Header())
	}
}

func TestParsePNG_BadSignature(t *testing.T) {
	tests := [][]byte{
		nil,
		[]byte("\x89PNG"),
		[]byte("GIF89a\x00\x00\x00\x00"),
	}

	for _, input := range tests {
		_, err := ParsePNG(input)
		var formatErr *UnsupportedFormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("ParsePNG(%q): expected *UnsupportedFormatError, got %v", input, err)
		}
	}
}

func TestParsePNG_CorruptChunk(t *testing.T) {
	encoded := testPNG().Bytes()

	// Flip a byte inside the tEXt data (signature 8 + IHDR 25 + tEXt header 8).
	corrupt := bytes.Clone(encoded)
	corrupt[8+25+8] ^= 0x01

	_, err := ParsePNG(corrupt)
	if !errors.Is(err, ErrCRCMismatch) {
		t.Fatalf("expected ErrCRCMismatch through the file error, got %v", err)
	}

	var fileErr *CorruptedFileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected *CorruptedFileError, got %T", err)
	}
	if fileErr.Index != 1 {
		t.Errorf("Index = %d, want 1", fileErr.Index)
	}
	if fileErr.Offset != 33 {
		t.Errorf("Offset = %d, want 33", fileErr.Offset)
	}
}

func TestParsePNG_TruncatedFile(t *testing.T) {
	encoded := testPNG().Bytes()

	_, err := ParsePNG(encoded[:len(encoded)-3])
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort for a cut-off IEND, got %v", err)
	}

	_, err = ParsePNG(encoded[:8+25+16])
	if !errors.Is(err, ErrTruncatedPayload) {
		t.Errorf("expected ErrTruncatedPayload, got %v", err)
	}
}

func TestPNG_ChunkByType(t *testing.T) {
	p := testPNG()

	c := p.ChunkByType(MustParseChunkType("tEXt"))
	if c == nil {
		t.Fatal("tEXt chunk not found")
	}
	if string(c.Data()) != "Title\x00test" {
		t.Errorf("unexpected data %q", c.Data())
	}

	if p.ChunkByType(MustParseChunkType("RuSt")) != nil {
		t.Error("expected nil for a missing chunk type")
	}
}

func TestPNG_AppendChunk(t *testing.T) {
	p := testPNG()
	p.AppendChunk(NewChunk(MustParseChunkType("ruSt"), []byte("hidden")))

	want := []string{"IHDR", "tEXt", "IDAT", "ruSt", "IEND"}
	if diff := cmp.Diff(want, chunkTypes(p)); diff != "" {
		t.Errorf("chunk order mismatch (-want +got):\n%s", diff)
	}

	// Without a trailing IEND the chunk goes last.
	q := NewPNG(nil)
	q.AppendChunk(NewChunk(MustParseChunkType("ruSt"), nil))
	q.AppendChunk(NewChunk(MustParseChunkType("abCd"), nil))
	if diff := cmp.Diff([]string{"ruSt", "abCd"}, chunkTypes(q)); diff != "" {
		t.Errorf("chunk order mismatch (-want +got):\n%s", diff)
	}
}

func TestPNG_RemoveChunk(t *testing.T) {
	p := testPNG()
	before := p.Chunks()

	removed, err := p.RemoveChunk(MustParseChunkType("tEXt"))
	if err != nil {
		t.Fatalf("RemoveChunk failed: %v", err)
	}
	if removed.Type().String() != "tEXt" {
		t.Errorf("removed %v, want tEXt", removed.Type())
	}

	want := []string{"IHDR", "IDAT", "IEND"}
	if diff := cmp.Diff(want, chunkTypes(p)); diff != "" {
		t.Errorf("chunk order mismatch (-want +got):\n%s", diff)
	}

	// Slices handed out earlier are not rewritten.
	if before[1].Type().String() != "tEXt" {
		t.Error("previously returned Chunks() slice was modified")
	}

	_, err = p.RemoveChunk(MustParseChunkType("tEXt"))
	if !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("expected ErrChunkNotFound, got %v", err)
	}
}

func TestPNG_WriteToError(t *testing.T) {
	boom := errors.New("boom")
	n, err := testPNG().WriteTo(&limitWriter{limit: 20, err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if n != 20 {
		t.Errorf("WriteTo reported %d bytes, want 20", n)
	}
}

func TestPNG_String(t *testing.T) {
	s := testPNG().String()
	for _, want := range []string{"4 chunks", "[0] IHDR length=13", "[3] IEND length=0 crc=2923585666"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

type limitWriter struct {
	limit int
	err   error
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if len(p) <= w.limit {
		w.limit -= len(p)
		return len(p), nil
	}
	n := w.limit
	w.limit = 0
	return n, w.err
}
