package main

import (
	"fmt"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [grammar]",
	Short: "Export the node tree visualization",
	Long:  `Generates the grammar and outputs a Mermaid diagram (graph TD) of the resulting node tree.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		highlight, _ := cmd.Flags().GetStringSlice("highlight")

		gen, err := cli.CreateGenerator(opts, cli.CreateLogger(opts.Debug))
		if err != nil {
			return err
		}
		defer gen.Close()

		g, err := cli.ResolveGrammar(cmd.Context(), gen, selectionFrom(cmd, args))
		if err != nil {
			return err
		}
		res, err := gen.Generate(cmd.Context(), g)
		if err != nil {
			return err
		}

		fmt.Print(graph.GenerateMermaid(res.Root, &graph.GraphOverlay{
			MaxDepth:  maxDepth,
			Highlight: highlight,
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addSelectionFlags(graphCmd)
	graphCmd.Flags().Int("max-depth", 0, "Collapse the tree below this depth (0 = unlimited)")
	graphCmd.Flags().StringSlice("highlight", nil, "Node names to highlight")
}
