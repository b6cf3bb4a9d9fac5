package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simonhull/pngme"
)

func newEncodeCommand(gopts *GlobalOptions) *cobra.Command {
	var opts EncodeOptions

	cmd := &cobra.Command{
		Use:   "encode [flags] FILE TYPE MESSAGE [OUTPUT]",
		Short: "Hide a message in a PNG file",
		Long: `
The "encode" command stores MESSAGE in a new chunk of type TYPE. The chunk is
inserted before IEND. The result is written to OUTPUT, or back to FILE when
OUTPUT is omitted.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		Args:              cobra.RangeArgs(3, 4),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.Context(), opts, *gopts, args)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// EncodeOptions collects all options for the encode command.
type EncodeOptions struct {
	CodecFlags
	SaveFlags
}

func (opts *EncodeOptions) AddFlags(f *pflag.FlagSet) {
	opts.CodecFlags.AddFlags(f)
	opts.SaveFlags.AddFlags(f)
}

func runEncode(ctx context.Context, opts EncodeOptions, gopts GlobalOptions, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return errors.New("usage: encode FILE TYPE MESSAGE [OUTPUT]")
	}
	path, typ, msg := args[0], args[1], args[2]
	output := path
	if len(args) == 4 {
		output = args[3]
	}

	p := newPrinter(gopts)

	ct, err := pngme.ParseChunkType(typ)
	if err != nil {
		return err
	}

	file, err := pngme.OpenContext(ctx, path)
	if err != nil {
		return err
	}

	chunk, err := pngme.EncodeMessage(ct, msg, pngme.WithCodec(opts.Codec))
	if err != nil {
		return errors.Wrap(err, "encode message")
	}
	if !ct.IsCritical() {
		p.Verbosef("%s is ancillary, image viewers will skip it\n", ct)
	} else {
		p.Warnf("warning: %s is a critical chunk type, decoders may reject %s\n", ct, output)
	}

	file.AppendChunk(chunk)
	p.Verbosef("added %s chunk: %d data bytes, crc %d\n", ct, chunk.Length(), chunk.CRC())

	if err := file.SaveAs(output, opts.saveOptions()...); err != nil {
		return errors.Wrapf(err, "save %s", output)
	}

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(struct {
			MessageType string `json:"message_type"` // encoded
			File        string `json:"file"`
			Type        string `json:"type"`
			Codec       string `json:"codec"`
			Length      uint32 `json:"length"`
			CRC         uint32 `json:"crc"`
		}{"encoded", output, ct.String(), opts.Codec, chunk.Length(), chunk.CRC()})
	}

	p.Printf("encoded message into %s chunk of %s\n", ct, output)
	return nil
}
