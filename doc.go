// Package pngme hides text messages inside PNG files and reads them back.
//
// A PNG file is an 8-byte signature followed by chunks. Each chunk carries
// a 4-letter type, opaque data and a CRC-32 over type and data. pngme adds
// and removes chunks of a type you choose and stores a message in the data.
// Image decoders skip ancillary chunks they do not know, so the picture
// still displays.
//
// # Quick Start
//
// Hide a message:
//
//	file, err := pngme.Open("dice.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	chunk, err := pngme.EncodeMessage(pngme.MustParseChunkType("ruSt"), "meet at noon")
//	if err != nil {
//		log.Fatal(err)
//	}
//	file.AppendChunk(chunk)
//	if err := file.Save(pngme.WithBackup(".bak")); err != nil {
//		log.Fatal(err)
//	}
//
// Read it back:
//
//	msg, err := file.FindMessage(pngme.MustParseChunkType("ruSt"))
//
// # Chunk Types
//
// Bit 5 of each type byte is a property flag, visible as the letter case:
//
//	ruSt
//	│││└ lowercase: safe to copy
//	││└─ uppercase: reserved bit clear (required)
//	│└── lowercase: private
//	└─── lowercase: ancillary
//
// ChunkTypeFromBytes, used for bytes read from files, rejects a set reserved
// bit. ParseChunkType accepts it so such types can still be inspected;
// EncodeMessage refuses to write them.
//
// # Errors
//
// Parsing stops at the first invalid chunk. Failures are typed errors that
// match a sentinel with errors.Is:
//
//	_, err := pngme.Open("dice.png")
//	switch {
//	case errors.Is(err, pngme.ErrCRCMismatch):
//		// chunk data or type was altered
//	case errors.Is(err, pngme.ErrTruncatedPayload):
//		// file was cut short
//	}
//
// Whole-file failures are wrapped in a *CorruptedFileError carrying the chunk
// index and byte offset.
//
// # Message Codecs
//
// Messages are stored as plain UTF-8 by default. WithCodec(CodecZlib)
// compresses them with the same deflate framing PNG uses for compressed text.
//
// # Concurrency
//
// Chunk and ChunkType values are immutable. A File is not safe for concurrent
// modification. OpenMany parses many files in parallel.
//
// # Debugging
//
// Set PNGME_DEBUG_LOG to a file path to get a trace of parsing and saving.
package pngme
