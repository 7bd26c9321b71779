package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/spf13/cobra"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the built-in recipes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range recipes.Names() {
			fmt.Printf("%-8s %s\n", name, recipes.Catalog[name].Description)
		}
	},
}

var recipesExportCmd = &cobra.Command{
	Use:   "export <recipe> <path>",
	Short: "Write a recipe as a grammar document",
	Long: `Writes the recipe to path as YAML, or JSON when path ends in .json, so it
can be edited and loaded back with --file or from a library directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := trimExt(args[1])
		g, err := recipes.Lookup(args[0], name)
		if err != nil {
			return err
		}
		if err := file.SaveGrammar(args[1], g); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", args[0], args[1])
		return nil
	},
}

func trimExt(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	recipesCmd.AddCommand(recipesExportCmd)
}
