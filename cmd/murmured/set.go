package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <oid> <TYPE> <value>",
	Short: "One-shot SET, printing the same frame the daemon would",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		oid, typeTag, value := args[0], args[1], strings.Join(args[2:], " ")
		printLines(ag.Engine.Set(oid, typeTag, value))
		return nil
	},
}
