package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simonhull/pngme"
)

func newPrintCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [flags] FILE...",
		Short: "List the chunks of PNG files",
		Long: `
The "print" command lists every chunk of each FILE with its type, length and
CRC. Files are read in parallel. With --json, one JSON object is printed per
file.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if any file could not be read or contains an invalid chunk.
`,
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.Context(), *gopts, args)
		},
	}
	return cmd
}

type chunkJSON struct {
	Index      int    `json:"index"`
	Offset     int64  `json:"offset"`
	Type       string `json:"type"`
	Length     uint32 `json:"length"`
	CRC        uint32 `json:"crc"`
	Critical   bool   `json:"critical"`
	Public     bool   `json:"public"`
	SafeToCopy bool   `json:"safe_to_copy"`
}

type fileJSON struct {
	MessageType string      `json:"message_type"` // file
	Path        string      `json:"path"`
	Size        int64       `json:"size"`
	Chunks      []chunkJSON `json:"chunks"`
}

func newFileJSON(f *pngme.File) fileJSON {
	out := fileJSON{
		MessageType: "file",
		Path:        f.Path,
		Size:        f.Size,
		Chunks:      []chunkJSON{},
	}

	off := int64(len(pngme.Signature))
	for i, c := range f.Chunks() {
		t := c.Type()
		out.Chunks = append(out.Chunks, chunkJSON{
			Index:      i,
			Offset:     off,
			Type:       t.String(),
			Length:     c.Length(),
			CRC:        c.CRC(),
			Critical:   t.IsCritical(),
			Public:     t.IsPublic(),
			SafeToCopy: t.IsSafeToCopy(),
		})
		off += int64(c.EncodedLen())
	}
	return out
}

func runPrint(ctx context.Context, gopts GlobalOptions, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no files given")
	}

	p := newPrinter(gopts)

	files, err := pngme.OpenMany(ctx, paths...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(gopts.stdout)
	for _, f := range files {
		if gopts.JSON {
			if err := enc.Encode(newFileJSON(f)); err != nil {
				return errors.Wrap(err, "encode JSON")
			}
			continue
		}

		p.Printf("%s: %s", f.Path, f.PNG)
		if gopts.Verbose {
			for _, c := range f.Chunks() {
				p.Printf("%s", c)
			}
		}
	}
	return nil
}
