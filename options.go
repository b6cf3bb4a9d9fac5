package pngme

import "github.com/simonhull/pngme/internal/container"

// Option configures behavior when opening PNG files.
//
// Example:
//
//	file, err := pngme.Open("dice.png",
//	    pngme.WithStrictOrdering(),
//	    pngme.WithMaxChunkSize(16<<20),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	maxChunkSize   int64 // Largest accepted chunk data length (0 = no limit)
	strictOrdering bool  // Require IHDR first and IEND last
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{}
}

func (o *openOptions) container() container.Options {
	return container.Options{
		MaxChunkSize:   o.maxChunkSize,
		StrictOrdering: o.strictOrdering,
	}
}

// WithMaxChunkSize rejects any chunk whose declared data length is larger
// than n bytes. The check happens before the chunk data is read, so a corrupt
// length field cannot trigger a huge allocation.
//
// Default is 0 (no limit beyond the file size).
func WithMaxChunkSize(n int64) Option {
	return func(o *openOptions) {
		o.maxChunkSize = n
	}
}

// WithStrictOrdering requires the first chunk to be IHDR, the last chunk to
// be IEND, and nothing to follow IEND.
//
// By default only the chunks themselves are validated, which is enough for
// hiding and recovering messages in files other tools would reject.
func WithStrictOrdering() Option {
	return func(o *openOptions) {
		o.strictOrdering = true
	}
}
