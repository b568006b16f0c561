package main

import (
	"fmt"

	"partforge/project"

	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params [family]",
	Short: "Display the parameter schema of a family",
	Long:  "Show every parameter of a family with its default, range, step and unit.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	f, ok := project.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown family %q, see 'partforge list'", args[0])
	}
	fmt.Printf("Parameters of %s:\n", f.Name())
	fmt.Printf("  %-16s %10s %10s %10s %8s %8s\n", "name", "default", "min", "max", "step", "unit")
	for _, ps := range f.Schema() {
		fmt.Printf("  %-16s %10g %10g %10g %8g %8s\n",
			ps.Name, ps.Default, ps.Min, ps.Max, ps.Step, ps.Unit)
		if len(ps.Options) > 0 {
			fmt.Printf("  %-16s options: %v\n", "", ps.Options)
		}
	}
	return nil
}
