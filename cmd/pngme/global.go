package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/simonhull/pngme"
)

// GlobalOptions holds the flags shared by all commands.
type GlobalOptions struct {
	Verbose bool
	JSON    bool

	stdout io.Writer
	stderr io.Writer
}

func newGlobalOptions() GlobalOptions {
	return GlobalOptions{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "print details about each step")
	f.BoolVar(&opts.JSON, "json", false, "set output mode to JSON for commands that support it")
}

// SaveFlags are the flags of commands that rewrite a PNG file.
type SaveFlags struct {
	Backup   string
	Validate bool
}

func (opts *SaveFlags) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.Backup, "backup", "", "keep the original file with this `suffix` appended (e.g. .bak)")
	f.BoolVar(&opts.Validate, "validate", false, "re-read the file after writing and compare every chunk")
}

func (opts SaveFlags) saveOptions() []pngme.SaveOption {
	var so []pngme.SaveOption
	if opts.Backup != "" {
		so = append(so, pngme.WithBackup(opts.Backup))
	}
	if opts.Validate {
		so = append(so, pngme.WithValidation())
	}
	return so
}

// CodecFlags select the message codec. The default comes from $PNGME_CODEC.
type CodecFlags struct {
	Codec string
}

func (opts *CodecFlags) AddFlags(f *pflag.FlagSet) {
	def := os.Getenv("PNGME_CODEC")
	if def == "" {
		def = pngme.CodecPlain
	}
	f.StringVar(&opts.Codec, "codec", def, fmt.Sprintf("message `codec`, one of %v (default: $PNGME_CODEC)", pngme.Codecs()))
}

// printer writes user-facing output. Messages go to stdout, warnings to stderr.
type printer struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

func newPrinter(gopts GlobalOptions) *printer {
	return &printer{
		stdout:  gopts.stdout,
		stderr:  gopts.stderr,
		verbose: gopts.Verbose,
	}
}

// Printf writes a message to stdout.
func (p *printer) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.stdout, format, args...)
}

// Verbosef writes a message to stdout if --verbose is set.
func (p *printer) Verbosef(format string, args ...interface{}) {
	if p.verbose {
		p.Printf(format, args...)
	}
}

// Warnf writes a message to stderr.
func (p *printer) Warnf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.stderr, format, args...)
}
