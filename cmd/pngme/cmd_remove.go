package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simonhull/pngme"
)

func newRemoveCommand(gopts *GlobalOptions) *cobra.Command {
	var opts RemoveOptions

	cmd := &cobra.Command{
		Use:   "remove [flags] FILE TYPE",
		Short: "Remove a chunk from a PNG file",
		Long: `
The "remove" command deletes the first chunk of type TYPE from FILE and
rewrites the file in place.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error, including no chunk of that type.
`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), opts, *gopts, args)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// RemoveOptions collects all options for the remove command.
type RemoveOptions struct {
	SaveFlags
}

func (opts *RemoveOptions) AddFlags(f *pflag.FlagSet) {
	opts.SaveFlags.AddFlags(f)
}

func runRemove(ctx context.Context, opts RemoveOptions, gopts GlobalOptions, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: remove FILE TYPE")
	}
	path, typ := args[0], args[1]

	p := newPrinter(gopts)

	ct, err := pngme.ParseChunkType(typ)
	if err != nil {
		return err
	}

	file, err := pngme.OpenContext(ctx, path)
	if err != nil {
		return err
	}

	removed, err := file.RemoveChunk(ct)
	if err != nil {
		return errors.Wrap(err, path)
	}
	if ct == pngme.ChunkTypeIHDR || ct == pngme.ChunkTypeIEND {
		p.Warnf("warning: removed %s, %s is no longer a valid image\n", ct, path)
	}

	if err := file.Save(opts.saveOptions()...); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(struct {
			MessageType string `json:"message_type"` // removed
			File        string `json:"file"`
			Type        string `json:"type"`
			Length      uint32 `json:"length"`
			CRC         uint32 `json:"crc"`
		}{"removed", path, ct.String(), removed.Length(), removed.CRC()})
	}

	p.Printf("removed %s chunk (%d bytes) from %s\n", ct, removed.Length(), path)
	p.Verbosef("%s", removed)
	return nil
}
