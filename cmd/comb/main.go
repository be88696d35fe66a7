package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "comb",
		Short: "Parser combinator playground and tooling",
	}

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
