package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=... -X main.gitCommit=...".
var (
	version   = "0.1.0"
	gitCommit = "development"
)

func versionString() string {
	return "v" + version
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commit := gitCommit
			if info, ok := debug.ReadBuildInfo(); ok && commit == "development" {
				for _, setting := range info.Settings {
					if setting.Key == "vcs.revision" {
						commit = setting.Value
					}
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "circuit %s\n", versionString())
			fmt.Fprintf(out, "  Git Commit: %s\n", commit)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
			return nil
		},
	}
}
