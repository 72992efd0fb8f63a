package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/shastina/diag"
	"github.com/aledsdavies/shastina/errkind"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <kind>",
		Short: "Describe an ErrorKind, fuzzy-matching near-misses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if k, ok := errkind.Lookup(name); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, k.Message())
				return nil
			}
			suggestions := diag.SuggestKind(name)
			if len(suggestions) == 0 {
				return fmt.Errorf("unknown error kind %q, and no close match found", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unknown error kind %q, did you mean:\n", name)
			limit := len(suggestions)
			if limit > 5 {
				limit = 5
			}
			for _, s := range suggestions[:limit] {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s)
			}
			return nil
		},
	}
}
