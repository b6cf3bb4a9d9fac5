package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/simonhull/pngme"
)

func testImage() []byte {
	return pngme.NewPNG([]*pngme.Chunk{
		pngme.NewChunk(pngme.ChunkTypeIHDR, make([]byte, 13)),
		pngme.NewChunk(pngme.MustParseChunkType("ruSt"), []byte("hidden")),
		pngme.NewChunk(pngme.ChunkTypeIEND, nil),
	}).Bytes()
}

func dump(data []byte) (string, int) {
	buf := &bytes.Buffer{}
	bad := dumpChunks(buf, bytes.NewReader(data), int64(len(data)), "test.png")
	return buf.String(), bad
}

func TestDumpChunks(t *testing.T) {
	out, bad := dump(testImage())
	if bad != 0 {
		t.Errorf("bad = %d, want 0\n%s", bad, out)
	}

	for _, want := range []string{
		"[0] IHDR (length: 13, offset: 8) crc ok",
		"[1] ruSt (length: 6, offset: 33) crc ok",
		"[2] IEND (length: 0, offset: 51) crc ok",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpChunks_ContinuesPastBadCRC(t *testing.T) {
	data := testImage()
	data[33+8] ^= 0xff // first ruSt data byte

	out, bad := dump(data)
	if bad != 1 {
		t.Errorf("bad = %d, want 1", bad)
	}
	if !strings.Contains(out, "[1] ruSt (length: 6, offset: 33) CRC MISMATCH") {
		t.Errorf("mismatch not reported:\n%s", out)
	}
	if !strings.Contains(out, "[2] IEND") {
		t.Errorf("walk stopped at the bad chunk:\n%s", out)
	}
}

func TestDumpChunks_InvalidType(t *testing.T) {
	data := testImage()
	data[33+4+2] = 's' // ruSt -> rust, reserved bit set

	out, bad := dump(data)
	// Invalid type, and the CRC no longer matches.
	if bad != 2 {
		t.Errorf("bad = %d, want 2\n%s", bad, out)
	}
	if !strings.Contains(out, "INVALID TYPE") {
		t.Errorf("invalid type not reported:\n%s", out)
	}
}

func TestDumpChunks_Truncated(t *testing.T) {
	data := testImage()
	out, bad := dump(data[:33+8+3])

	if bad != 1 {
		t.Errorf("bad = %d, want 1", bad)
	}
	if !strings.Contains(out, "truncated") {
		t.Errorf("truncation not reported:\n%s", out)
	}
}

func TestDumpChunks_NotPNG(t *testing.T) {
	out, bad := dump([]byte("GIF89a"))
	if bad != 1 || !strings.Contains(out, "not a PNG") {
		t.Errorf("got %q, bad=%d", out, bad)
	}
}
