package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/shastina"
	"github.com/aledsdavies/shastina/diag"
	"github.com/aledsdavies/shastina/source"
)

func newValidateCmd() *cobra.Command {
	var fingerprint bool
	var strictTrailer bool
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a document and report the first error, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, src, err := parseFile(args[0])
			if err != nil {
				return err
			}
			last := entities[len(entities)-1]
			if last.Kind == shastina.Error {
				return fmt.Errorf("%s: %s", args[0], last.Err.Message())
			}
			if strictTrailer {
				if terr := src.ConsumeTrailingBlank(); terr != nil {
					return fmt.Errorf("%s: %v", args[0], terr)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d entities)\n", args[0], len(entities))
			if fingerprint {
				snap, err := diag.NewSnapshot(entities)
				if err != nil {
					return err
				}
				fp, err := snap.Fingerprint()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\n", fp)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print a content hash of the parsed document")
	cmd.Flags().BoolVar(&strictTrailer, "strict-trailer", false, "reject anything after |; that isn't whitespace")
	return cmd
}

func parseFile(path string) ([]shastina.Entity, *source.Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	src := source.NewMemory(data)
	r := shastina.New(src)
	return shastina.Drain(r), src, nil
}
