package pngme

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/pngme/internal/container"
	"github.com/simonhull/pngme/internal/debug"
)

// File is a PNG file read from disk or from an io.ReaderAt.
//
// The whole chunk list is parsed and validated by Open; the file handle is
// released before Open returns, so there is nothing to close. Modify the
// embedded PNG with AppendChunk and RemoveChunk, then call Save:
//
//	file, err := pngme.Open("dice.png")
//	if err != nil {
//		return err
//	}
//	chunk, err := pngme.EncodeMessage(pngme.MustParseChunkType("ruSt"), "hello")
//	if err != nil {
//		return err
//	}
//	file.AppendChunk(chunk)
//	return file.Save()
type File struct {
	*PNG

	// Path the file was read from ("<reader>" for OpenReader)
	Path string

	// Size of the file in bytes when it was read
	Size int64
}

// Open opens a PNG file and validates every chunk in it.
//
// The first invalid chunk stops the parse with a *CorruptedFileError naming
// its index and byte offset. Use errors.Is with ErrCRCMismatch and friends to
// find out what was wrong with it.
//
// Example:
//
//	file, err := pngme.Open("dice.png", pngme.WithStrictOrdering())
//	if err != nil {
//		return err
//	}
//	fmt.Println(file)
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return openReader(f, stat.Size(), path, options)
}

// OpenReader parses a PNG datastream of the given size from r.
//
// r is only read during the call.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return openReader(r, size, readerPath, options)
}

// readerPath is the Path of files opened with OpenReader.
const readerPath = "<reader>"

func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	debug.Log("open %v (%d bytes)", path, size)

	p, err := container.Parse(r, size, path, options.container())
	if err != nil {
		return nil, err
	}

	return &File{
		PNG:  p,
		Path: path,
		Size: size,
	}, nil
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before the file is opened and again once it is
// parsed, so a cancelled caller never receives a File.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

// OpenMany opens multiple PNG files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails, the first error is returned and no files are.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	files, err := pngme.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %d chunks\n", f.Path, len(f.Chunks()))
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			file, err := OpenContext(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
