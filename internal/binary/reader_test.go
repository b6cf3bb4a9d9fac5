package binary

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockReader implements io.ReaderAt for testing.
type mockReader struct {
	data []byte
}

func (m *mockReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// shortReader always returns fewer bytes than asked for.
type shortReader struct{}

func (shortReader) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}

func TestSafeReader_ReadAt_Success(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(&mockReader{data: data}, int64(len(data)), "test.png")

	buf := make([]byte, 2)
	if err := sr.ReadAt(buf, 2, "test read"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf[0] != 0x03 || buf[1] != 0x04 {
		t.Errorf("expected [0x03, 0x04], got [0x%02x, 0x%02x]", buf[0], buf[1])
	}
}

func TestSafeReader_ReadAt_OutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(&mockReader{data: data}, int64(len(data)), "test.png")

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"offset past end", 10, 2},
		{"offset at end", 4, 1},
		{"negative offset", -1, 1},
		{"read crosses end", 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.ReadAt(make([]byte, tt.n), tt.off, "chunk header")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}

			msg := err.Error()
			if !strings.Contains(msg, "test.png") {
				t.Errorf("error should contain path: %v", msg)
			}
			if !strings.Contains(msg, "chunk header") {
				t.Errorf("error should contain context: %v", msg)
			}
		})
	}
}

func TestSafeReader_ReadAt_EmptyAtEnd(t *testing.T) {
	data := []byte{0x01}
	sr := NewSafeReader(&mockReader{data: data}, 1, "test.png")

	if err := sr.ReadAt(nil, 1, "empty payload"); err != nil {
		t.Errorf("zero-length read at end should succeed, got %v", err)
	}
}

func TestSafeReader_ReadAt_ShortRead(t *testing.T) {
	sr := NewSafeReader(shortReader{}, 16, "short.png")

	err := sr.ReadAt(make([]byte, 4), 0, "chunk type")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "short read") {
		t.Errorf("expected short read error, got %v", err)
	}
}

func TestSafeReader_ReadUint32(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x2A, 0x12, 0x34, 0x56, 0x78}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")

	val, err := sr.ReadUint32(4, "crc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", val)
	}

	if _, err := sr.ReadUint32(6, "crc"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for partial uint32, got %v", err)
	}
}

func TestSafeReader_ReadBytes_RejectsHugeLength(t *testing.T) {
	data := []byte("IHDR")
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")

	// A length taken from a corrupted header must fail before allocating.
	_, err := sr.ReadBytes(0, 1<<40, "chunk data")
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}

	_, err = sr.ReadBytes(0, -1, "chunk data")
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for negative length, got %v", err)
	}
}

func TestSafeReader_Remaining(t *testing.T) {
	sr := NewSafeReader(&mockReader{data: make([]byte, 10)}, 10, "test.png")

	tests := []struct {
		off  int64
		want int64
	}{
		{0, 10},
		{4, 6},
		{10, 0},
		{11, 0},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := sr.Remaining(tt.off); got != tt.want {
			t.Errorf("Remaining(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestReader_Sequential(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x00, 0x03, // length
		'R', 'u', 'S', 't', // type
		0xAA, 0xBB, 0xCC, // data
		0xDE, 0xAD, 0xBE, 0xEF, // crc
	}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")
	r := NewReader(sr, 0)

	length, err := r.Uint32("length")
	if err != nil {
		t.Fatalf("read length failed: %v", err)
	}
	if length != 3 {
		t.Errorf("expected length 3, got %d", length)
	}

	typ, err := r.Array4("type")
	if err != nil {
		t.Fatalf("read type failed: %v", err)
	}
	if string(typ[:]) != "RuSt" {
		t.Errorf("expected type RuSt, got %q", typ[:])
	}

	payload, err := r.Bytes(int64(length), "data")
	if err != nil {
		t.Fatalf("read data failed: %v", err)
	}
	if !bytes.Equal(payload, []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("unexpected data % x", payload)
	}

	if r.Remaining() != 4 {
		t.Errorf("expected 4 bytes remaining, got %d", r.Remaining())
	}

	crc, err := r.Uint32("crc")
	if err != nil {
		t.Fatalf("read crc failed: %v", err)
	}
	if crc != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF, got 0x%08x", crc)
	}

	if r.Offset() != int64(len(data)) {
		t.Errorf("expected offset %d, got %d", len(data), r.Offset())
	}

	if _, err := r.Uint32("next length"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds past end, got %v", err)
	}
}

func TestReader_Skip(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")
	r := NewReader(sr, 0)

	r.Skip(4)
	val, err := r.Uint32("value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 7 {
		t.Errorf("expected 7, got %d", val)
	}
}
