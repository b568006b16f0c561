package main

import (
	"fmt"

	"partforge/project"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available part families",
	Long:  "Show every registered part family with its default part breakdown.",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	for _, name := range project.Names() {
		f, _ := project.Lookup(name)
		parts := f.Parts(f.Schema().Defaults())
		fmt.Printf("%s (%d parts:", name, len(parts))
		for _, p := range parts {
			fmt.Printf(" %s", p.ID)
		}
		fmt.Println(")")
	}
}
