package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snmpext/murmured/internal/schedparser"
)

var dumpScheduleCmd = &cobra.Command{
	Use:   "dump-schedule [file]",
	Short: "Serialize the event registry to file, or to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ag.Lock()
		rows, err := ag.Store.ListEvents()
		ag.Unlock()
		if err != nil {
			return withExitCode(1, fmt.Errorf("list events: %w", err))
		}

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return withExitCode(1, fmt.Errorf("create output file: %w", err))
			}
			defer f.Close()
			out = f
		}

		return schedparser.Dump(out, rows)
	},
}
