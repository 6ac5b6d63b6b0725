package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/snmpext/murmured/internal/scheduler"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Enter pass_persist mode, serving requests on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		done := make(chan struct{})
		go func() {
			ag.StartScheduler(ctx, scheduler.NewTicker())
			close(done)
		}()

		err := ag.Engine.Serve(os.Stdin, os.Stdout)
		cancel()
		<-done
		return err
	},
}
