package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simonhull/pngme"
)

func newDecodeCommand(gopts *GlobalOptions) *cobra.Command {
	var opts DecodeOptions

	cmd := &cobra.Command{
		Use:   "decode [flags] FILE TYPE",
		Short: "Print the message hidden in a PNG file",
		Long: `
The "decode" command prints the message stored in the first chunk of type
TYPE. Use the same --codec that was used to encode it.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error, including no chunk of that type.
`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.Context(), opts, *gopts, args)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// DecodeOptions collects all options for the decode command.
type DecodeOptions struct {
	CodecFlags
}

func runDecode(ctx context.Context, opts DecodeOptions, gopts GlobalOptions, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: decode FILE TYPE")
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
	p.Verbosef("%s: %d chunks\n", path, len(file.Chunks()))

	msg, err := file.FindMessage(ct, pngme.WithCodec(opts.Codec))
	if err != nil {
		return errors.Wrap(err, path)
	}

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(struct {
			MessageType string `json:"message_type"` // decoded
			File        string `json:"file"`
			Type        string `json:"type"`
			Message     string `json:"message"`
		}{"decoded", path, ct.String(), msg})
	}

	p.Printf("%s\n", msg)
	return nil
}
