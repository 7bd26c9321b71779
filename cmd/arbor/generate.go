package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [grammar]",
	Short: "Expand a grammar and build its geometry",
	Long: `Expands the selected grammar, interprets it with the turtle and prints the result.

Formats:
- summary (default): Markdown report, styled when stdout is a terminal.
- json: the full node tree with segments.
- mermaid: a Mermaid diagram of the node tree.
- expanded: the rewritten symbol string.
- stats: node tree statistics as JSON.`,
	Example: `  arbor generate --recipe grass
  arbor generate --file fern.yaml --format json
  arbor generate --dir ./grammars willow --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		format, _ := cmd.Flags().GetString("format")
		watch, _ := cmd.Flags().GetBool("watch")
		sel := selectionFrom(cmd, args)

		logger := cli.CreateLogger(opts.Debug)
		gen, err := cli.CreateGenerator(opts, logger)
		if err != nil {
			return err
		}
		defer gen.Close()

		render := tui.RendererFor(os.Stdout)

		if watch {
			if sel.Name == "" {
				return fmt.Errorf("--watch requires a library grammar name")
			}
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return cli.RunWatch(ctx, gen, sel, os.Stdout, format, render, logger)
		}

		ctx := cmd.Context()
		g, err := cli.ResolveGrammar(ctx, gen, sel)
		if err != nil {
			return err
		}
		res, err := gen.Generate(ctx, g)
		if err != nil {
			return err
		}
		return cli.WriteResult(os.Stdout, g, res, format, render)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addSelectionFlags(generateCmd)
	generateCmd.Flags().StringP("format", "o", cli.FormatSummary, "Output format: "+strings.Join(cli.Formats, ", "))
	generateCmd.Flags().BoolP("watch", "w", false, "Regenerate when the library grammar changes")
}
