package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [grammar...]",
	Short: "Check grammars for errors",
	Long: `Validates and expands grammars without building geometry. With no arguments
every grammar in the library (--dir) is checked; --file checks a single document.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Grammars are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "Grammar document (.yaml, .yml or .json)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := optionsFrom(cmd)
	gen, err := cli.CreateGenerator(opts, cli.CreateLogger(opts.Debug))
	if err != nil {
		return err
	}
	defer gen.Close()
	ctx := cmd.Context()

	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		g, err := cli.ResolveGrammar(ctx, gen, cli.Selection{File: file, Iterations: -1})
		if err != nil {
			return err
		}
		_, err = gen.Expand(ctx, g)
		return err
	}

	names := args
	if len(names) == 0 {
		loader := gen.Loader()
		if loader == nil {
			return fmt.Errorf("nothing to validate: use --file or --dir")
		}
		if names, err = loader.ListGrammars(ctx); err != nil {
			return err
		}
	}

	if len(names) == 0 {
		return fmt.Errorf("%w: library is empty", domain.ErrGrammarNotFound)
	}

	var errs []error
	for _, name := range names {
		g, err := cli.ResolveGrammar(ctx, gen, cli.Selection{Name: name, Iterations: -1})
		if err == nil {
			_, err = gen.Expand(ctx, g)
		}
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		fmt.Printf("  ✓ %s\n", name)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d grammars failed: %w", len(errs), len(names), errors.Join(errs...))
	}
	return nil
}
