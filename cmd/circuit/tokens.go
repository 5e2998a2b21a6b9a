package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTokensCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <script>",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, source, err := readScript(args[0])
			if err != nil {
				return err
			}
			stream, err := a.engine.Tokenize(source)
			if err != nil {
				n := writeDiagnostics(cmd.OutOrStdout(), path, source, err, a.color)
				return problemsError("tokens", n)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range stream.Remaining() {
				start := tok.Span.Start
				fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", start.Line+1, start.Column+1, tok.Type, tok.Text(source))
			}
			return tw.Flush()
		},
	}
}
