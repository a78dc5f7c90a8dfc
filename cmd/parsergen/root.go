package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parsergen",
	Short: "Generate LR parsing tables from a grammar and parse with them",
	Long: `parsergen provides three features:
- Generates an LR(0) or SLR(1) parsing table from a grammar.
- Parses an input string with the generated table and prints the
  parse tree or a step-by-step trace.
- Serves the generator and the parser over HTTP.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
