package main

import (
	"encoding/json"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/simonhull/pngme"
)

func newVersionCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `
The "version" command prints detailed information about the build environment
and the version of this software.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVersion(*gopts)
		},
	}
	return cmd
}

func runVersion(gopts GlobalOptions) error {
	info := pngme.GetVersionInfo()

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(struct {
			MessageType string `json:"message_type"` // version
			Version     string `json:"version"`
			GitCommit   string `json:"git_commit"`
			BuildTime   string `json:"build_time"`
			GoVersion   string `json:"go_version"`
			GoOS        string `json:"go_os"`
			GoArch      string `json:"go_arch"`
		}{"version", info.Version, info.GitCommit, info.BuildTime, info.GoVersion, runtime.GOOS, runtime.GOARCH})
	}

	p := newPrinter(gopts)
	p.Printf("pngme %s compiled with %v on %v/%v\n", info.Version, info.GoVersion, runtime.GOOS, runtime.GOARCH)
	p.Verbosef("commit %s, built %s\n", info.GitCommit, info.BuildTime)
	return nil
}
