// Command shastina is a small driver around the reader library: it
// validates Shastina documents, dumps their entity stream, explains
// ErrorKind names, and watches a file for changes.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shastina",
		Short:         "Read and inspect Shastina structured-data documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newExplainCmd())
	root.AddCommand(newWatchCmd())
	return root
}
