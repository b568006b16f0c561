package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "partforge",
	Short: "A CLI for generating parametric printable parts",
	Long: `partforge builds parametric part families from exact signed distance
fields and exports them as STL or 3MF meshes. Parameters are clamped to
each family's schema, so any value combination produces a valid model.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
