package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/shastina"
	"github.com/aledsdavies/shastina/diag"
)

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the entity stream produced by parsing a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, _, err := parseFile(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "text", "":
				for _, e := range entities {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", describe(e))
				}
				return nil
			case "cbor":
				snap, err := diag.NewSnapshot(entities)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(snap.Bytes)
				return err
			default:
				return fmt.Errorf("unsupported format %q (want text or cbor)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or cbor")
	return cmd
}

func describe(e shastina.Entity) string {
	return fmt.Sprintf("%s text=%q prefix=%q payload=%q count=%d err=%s",
		e.Kind, e.Text, e.Prefix, e.Payload, e.Count, e.Err)
}
