package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear both the MIB table and the event registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ag.Lock()
		defer ag.Unlock()

		if err := ag.Table.Clear(); err != nil {
			return withExitCode(1, fmt.Errorf("clear mib table: %w", err))
		}
		if err := ag.Scheduler.ClearEvents(); err != nil {
			return withExitCode(1, fmt.Errorf("clear events: %w", err))
		}
		return nil
	},
}
