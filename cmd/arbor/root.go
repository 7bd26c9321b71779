package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor grows branching 3D geometry from L-System grammars",
	Long: `Arbor rewrites L-System grammars and interprets the result with a 3D turtle,
producing a tree of geometry nodes. Grammars come from the built-in recipes,
from a single YAML/JSON file, or from a library directory (--dir).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing a grammar library")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("cache", cli.CacheNone, "Expansion cache: memory, redis or sqlite")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for --cache=redis")
	rootCmd.PersistentFlags().String("sqlite", "arbor-cache.db", "Database file for --cache=sqlite")
}

// optionsFrom reads the persistent flags.
func optionsFrom(cmd *cobra.Command) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")
	cache, _ := cmd.Flags().GetString("cache")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	sqlitePath, _ := cmd.Flags().GetString("sqlite")
	return cli.Options{
		Dir:       dir,
		Debug:     debug,
		Cache:     cache,
		RedisAddr: redisAddr,
		SQLite:    sqlitePath,
	}
}

// addSelectionFlags registers the flags that pick a grammar. A library
// grammar is named by the first positional argument.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("recipe", "r", "", "Built-in recipe to use (see 'arbor recipes')")
	cmd.Flags().StringP("file", "f", "", "Grammar document (.yaml, .yml or .json)")
	cmd.Flags().StringP("label", "l", "", "Prefix for generated node names")
	cmd.Flags().IntP("iterations", "n", -1, "Override the grammar's iteration count")
}

func selectionFrom(cmd *cobra.Command, args []string) cli.Selection {
	recipe, _ := cmd.Flags().GetString("recipe")
	file, _ := cmd.Flags().GetString("file")
	label, _ := cmd.Flags().GetString("label")
	iterations, _ := cmd.Flags().GetInt("iterations")
	sel := cli.Selection{Recipe: recipe, File: file, Label: label, Iterations: iterations}
	if len(args) > 0 {
		sel.Name = args[0]
	}
	return sel
}
