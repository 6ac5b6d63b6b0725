package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <oid>",
	Short: "One-shot GET, printing the same frame the daemon would",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printLines(ag.Engine.Get(args[0]))
		return nil
	},
}

var getNextCmd = &cobra.Command{
	Use:   "getnext <oid>",
	Short: "One-shot GETNEXT, printing the same frame the daemon would",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printLines(ag.Engine.GetNext(args[0]))
		return nil
	},
}

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Println(l)
	}
}
