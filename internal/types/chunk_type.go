package types

// ChunkType is a validated 4-byte PNG chunk type code.
//
// Bit 5 (0x20) of each byte carries a property flag; for ASCII letters it is
// the case bit, so the flags can be read off the spelling:
//
//	byte 0: uppercase = critical,       lowercase = ancillary
//	byte 1: uppercase = public,         lowercase = private
//	byte 2: uppercase = reserved valid, lowercase = reserved bit set
//	byte 3: uppercase = unsafe to copy, lowercase = safe to copy
//
// ChunkType values are comparable with == and immutable.
type ChunkType struct {
	b [4]byte
}

const propertyBit = 1 << 5

// Well-known chunk types used by the container code.
var (
	ChunkTypeIHDR = MustParseChunkType("IHDR")
	ChunkTypeIEND = MustParseChunkType("IEND")
)

// ChunkTypeFromBytes validates b and returns it as a ChunkType.
//
// Every byte must be an ASCII letter and the reserved bit (byte 2) must be
// clear. This is the constructor used when reading chunks from a file.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !IsValidChunkTypeByte(c) {
			return ChunkType{}, &InvalidChunkTypeError{
				Bytes:  b[:],
				Reason: "bytes must be ASCII letters A-Z or a-z",
			}
		}
	}

	t := ChunkType{b: b}
	if !t.IsReservedBitValid() {
		return ChunkType{}, &InvalidChunkTypeError{
			Bytes:  b[:],
			Reason: "third byte must be uppercase (reserved bit set)",
		}
	}
	return t, nil
}

// ParseChunkType builds a ChunkType from a 4-character string.
//
// Unlike ChunkTypeFromBytes, the reserved bit is not checked: "Rust" parses
// and reports IsReservedBitValid() == false. Callers that are about to write
// the type into a file should check IsValid.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &InvalidLengthError{Text: s}
	}

	var t ChunkType
	for i := 0; i < 4; i++ {
		if !IsValidChunkTypeByte(s[i]) {
			return ChunkType{}, &InvalidChunkTypeError{
				Bytes:  []byte(s),
				Reason: "bytes must be ASCII letters A-Z or a-z",
			}
		}
		t.b[i] = s[i]
	}
	return t, nil
}

// MustParseChunkType is like ParseChunkType but panics on error.
// It is meant for package-level variables built from literals.
func MustParseChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValidChunkTypeByte reports whether c is an ASCII letter.
func IsValidChunkTypeByte(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// Bytes returns the raw type bytes.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

// IsCritical reports whether decoders must understand the chunk to display
// the image.
func (t ChunkType) IsCritical() bool {
	return t.b[0]&propertyBit == 0
}

// IsPublic reports whether the chunk type is part of the PNG specification
// or registered with it.
func (t ChunkType) IsPublic() bool {
	return t.b[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit is clear, as required
// for files conforming to the current PNG version.
func (t ChunkType) IsReservedBitValid() bool {
	return t.b[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors that do not recognize the chunk may
// copy it into a modified file.
func (t ChunkType) IsSafeToCopy() bool {
	return t.b[3]&propertyBit != 0
}

// IsValid reports whether the reserved bit is clear and all four bytes are
// ASCII letters.
func (t ChunkType) IsValid() bool {
	if !t.IsReservedBitValid() {
		return false
	}
	for _, c := range t.b {
		if !IsValidChunkTypeByte(c) {
			return false
		}
	}
	return true
}

// String returns the type as its four ASCII characters.
func (t ChunkType) String() string {
	return string(t.b[:])
}
