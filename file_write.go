package pngme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/pngme/internal/container"
	"github.com/simonhull/pngme/internal/debug"
)

// Save writes the chunk list back to the file it was opened from.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the original path. If any step fails, the original file remains unchanged.
//
//	err := file.Save(
//	    pngme.WithBackup(".bak"),
//	    pngme.WithValidation(),
//	)
func (f *File) Save(opts ...SaveOption) error {
	if f.Path == readerPath {
		return fmt.Errorf("file was opened from a reader, use SaveAs")
	}
	return f.SaveAs(f.Path, opts...)
}

// SaveAs writes the file to a new location.
//
// This is an atomic operation: writes to a temporary file in the target
// directory first, then renames it to outputPath. If any step fails, the
// partially written data is removed.
func (f *File) SaveAs(outputPath string, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if f.PNG == nil {
		return fmt.Errorf("file has no PNG datastream")
	}

	debug.Log("save %v (%d chunks) to %v", f.Path, len(f.Chunks()), outputPath)

	var origInfo os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(f.Path); err == nil {
			origInfo = info
		}
	}

	// Same directory as the output so the rename stays on one filesystem.
	tempFile, err := os.CreateTemp(filepath.Dir(outputPath), ".pngme-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := container.Write(tempFile, f.PNG); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// CreateTemp uses 0600; keep the permissions of the file being replaced.
	if info, err := os.Stat(outputPath); err == nil {
		_ = os.Chmod(tempPath, info.Mode().Perm()) //nolint:errcheck // Non-fatal
	} else {
		_ = os.Chmod(tempPath, 0o644) //nolint:errcheck // Non-fatal
	}

	if options.backupSuffix != "" {
		backupPath := outputPath + options.backupSuffix
		if _, err := os.Stat(outputPath); err == nil {
			debug.Log("backup %v -> %v", outputPath, backupPath)
			if err := os.Rename(outputPath, backupPath); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if origInfo != nil {
		_ = os.Chtimes(outputPath, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := f.validateWrittenFile(outputPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// validateWrittenFile re-opens the file and compares it chunk by chunk.
func (f *File) validateWrittenFile(path string) error {
	written, err := Open(path)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}

	want, got := f.Chunks(), written.Chunks()
	if len(got) != len(want) {
		return fmt.Errorf("chunk count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type() != want[i].Type() {
			return fmt.Errorf("chunk %d type mismatch: got %s, want %s", i, got[i].Type(), want[i].Type())
		}
		if got[i].CRC() != want[i].CRC() || !bytes.Equal(got[i].Data(), want[i].Data()) {
			return fmt.Errorf("chunk %d (%s) data mismatch", i, want[i].Type())
		}
	}

	return nil
}
