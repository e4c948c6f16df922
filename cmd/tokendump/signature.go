package main

import (
	"fmt"

	"github.com/pradhp1999/dhruva-sub011/token"
	"github.com/spf13/cobra"
)

func newSignatureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signature <dictionary name>",
		Short: "Print signature of dictionary name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "0x%04X\n", token.SignatureOf([]byte(args[0])))
			return nil
		},
	}
}

func newDictsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dicts",
		Short: "List registered static dictionaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range a.registry.Dictionaries() {
				fmt.Fprintf(cmd.OutOrStdout(), "0x%04X %s entries=%d\n", d.Signature, d.Name, d.Len())
			}
			return nil
		},
	}
}
