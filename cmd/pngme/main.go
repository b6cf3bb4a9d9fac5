// Command pngme hides messages in PNG files and reads them back.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simonhull/pngme"
	"github.com/simonhull/pngme/internal/debug"
)

func newRootCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pngme",
		Short: "Hide messages in PNG files",
		Long: `
pngme stores text messages in chunks of a PNG file. Image viewers skip
ancillary chunks they do not know, so the image still displays normally.

Chunk types are four ASCII letters. The case of each letter is a flag; use a
lowercase first letter (ancillary) and an uppercase third letter (reserved
bit clear), for example "ruSt".
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	gopts.AddFlags(cmd.PersistentFlags())
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newEncodeCommand(gopts),
		newDecodeCommand(gopts),
		newRemoveCommand(gopts),
		newPrintCommand(gopts),
		newVersionCommand(gopts),
	)

	return cmd
}

func createGlobalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printExitError(gopts GlobalOptions, code int, message string) {
	if gopts.JSON {
		type jsonExitError struct {
			MessageType string `json:"message_type"` // exit_error
			Code        int    `json:"code"`
			Message     string `json:"message"`
		}

		err := json.NewEncoder(gopts.stderr).Encode(jsonExitError{
			MessageType: "exit_error",
			Code:        code,
			Message:     message,
		})
		if err == nil {
			return
		}
	}
	_, _ = fmt.Fprintf(gopts.stderr, "%v\n", message)
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func main() {
	debug.Log("main %#v", os.Args)
	debug.Log("pngme %s compiled with %v on %v/%v",
		pngme.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	gopts := newGlobalOptions()

	ctx, cancel := createGlobalContext()
	err := newRootCommand(&gopts).ExecuteContext(ctx)
	cancel()

	code := exitCode(err)
	if code != 0 {
		printExitError(gopts, code, err.Error())
	}
	os.Exit(code)
}
