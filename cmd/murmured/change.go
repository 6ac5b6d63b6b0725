package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var changeCmd = &cobra.Command{
	Use:   "change <oid> <value>",
	Short: "Directly mutate an OID's value, bypassing access-mode checks",
	Long: `change is used for test and preseeding scenarios: it sets an
OID's value through the same type validation as SET, but does not check
access_mode, so READ_ONLY and NOT_ACCESSIBLE nodes can still be seeded.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oid, value := args[0], args[1]

		ag.Lock()
		defer ag.Unlock()

		o := ag.Table.GetByOID(oid)
		if o == nil {
			return withExitCode(1, fmt.Errorf("oid %s not found", oid))
		}
		if err := o.SetValue(value); err != nil {
			return withExitCode(1, fmt.Errorf("change %s: %w", oid, err))
		}
		return nil
	},
}
