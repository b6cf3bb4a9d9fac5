// Command chunk-dump lists the raw chunk headers of a PNG file.
//
// Unlike pngme print it does not stop at the first bad chunk: CRC mismatches
// and invalid type codes are reported and the walk continues, which helps
// when looking at damaged files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/crc32"

	"github.com/simonhull/pngme"
	"github.com/simonhull/pngme/internal/binary"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: chunk-dump <file.png>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if bad := dumpChunks(os.Stdout, f, stat.Size(), os.Args[1]); bad > 0 {
		os.Exit(2)
	}
}

// dumpChunks writes one line per chunk and returns the number of problems found.
func dumpChunks(w io.Writer, r io.ReaderAt, size int64, path string) int {
	sr := binary.NewSafeReader(r, size, path)

	sig := make([]byte, len(pngme.Signature))
	if err := sr.ReadAt(sig, 0, "signature"); err != nil || string(sig) != string(pngme.Signature[:]) {
		fmt.Fprintf(w, "not a PNG file (bad signature)\n")
		return 1
	}

	bad := 0
	offset := int64(len(pngme.Signature))
	for index := 0; offset < size; index++ {
		rd := binary.NewReader(sr, offset)

		length, err := rd.Uint32("chunk length")
		if err != nil {
			fmt.Fprintf(w, "[%d] truncated header at offset %d (%d bytes left)\n", index, offset, size-offset)
			return bad + 1
		}
		raw, err := rd.Array4("chunk type")
		if err != nil {
			fmt.Fprintf(w, "[%d] truncated header at offset %d (%d bytes left)\n", index, offset, size-offset)
			return bad + 1
		}

		typeNote := ""
		if _, err := pngme.ChunkTypeFromBytes(raw); err != nil {
			typeNote = " INVALID TYPE"
			bad++
		}

		data, err := rd.Bytes(int64(length), "chunk data")
		if err != nil {
			fmt.Fprintf(w, "[%d] %q (length: %d, offset: %d)%s truncated: only %d bytes left\n",
				index, raw[:], length, offset, typeNote, rd.Remaining())
			return bad + 1
		}
		stored, err := rd.Uint32("chunk CRC")
		if err != nil {
			fmt.Fprintf(w, "[%d] %q (length: %d, offset: %d)%s missing CRC\n", index, raw[:], length, offset, typeNote)
			return bad + 1
		}

		h := crc32.NewIEEE()
		h.Write(raw[:])
		h.Write(data)
		computed := h.Sum32()

		crcNote := "crc ok"
		if stored != computed {
			crcNote = fmt.Sprintf("CRC MISMATCH stored=0x%08x computed=0x%08x", stored, computed)
			bad++
		}

		fmt.Fprintf(w, "[%d] %s (length: %d, offset: %d) %s%s\n", index, raw[:], length, offset, crcNote, typeNote)
		offset = rd.Offset()
	}

	return bad
}
