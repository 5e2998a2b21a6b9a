package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>...",
		Short: "Report lexical and grammar errors without printing the tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			problems := 0
			for _, arg := range args {
				path, source, err := readScript(arg)
				if err != nil {
					return err
				}
				program, err := a.engine.Parse(source)
				if err != nil {
					problems += writeDiagnostics(out, path, source, err, a.color)
					continue
				}
				a.logger.Info("checked", "path", path, "statements", len(program.Statements))
			}
			if problems > 0 {
				return problemsError("check", problems)
			}
			fmt.Fprintln(out, "No errors found")
			return nil
		},
	}
}
