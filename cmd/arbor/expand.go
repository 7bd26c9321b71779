package main

import (
	"fmt"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [grammar]",
	Short: "Print the rewritten symbol string",
	Long:  `Runs only the rewriting phase and prints the expanded string. No geometry is built.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		gen, err := cli.CreateGenerator(opts, cli.CreateLogger(opts.Debug))
		if err != nil {
			return err
		}
		defer gen.Close()

		g, err := cli.ResolveGrammar(cmd.Context(), gen, selectionFrom(cmd, args))
		if err != nil {
			return err
		}
		expanded, err := gen.Expand(cmd.Context(), g)
		if err != nil {
			return err
		}
		fmt.Println(expanded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	addSelectionFlags(expandCmd)
}
