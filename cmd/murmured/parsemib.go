package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snmpext/murmured/internal/mibparser"
)

var parseMibCmd = &cobra.Command{
	Use:   "parse-mib <root-oid> <mib-file>",
	Short: "Load a declarative MIB file, appending OID rows under root-oid",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, path := args[0], args[1]

		f, err := os.Open(path)
		if err != nil {
			return withExitCode(1, fmt.Errorf("open mib file: %w", err))
		}
		defer f.Close()

		ag.Lock()
		n, err := mibparser.LoadFile(ag.Store, ag.Table, root, f)
		ag.Unlock()
		if err != nil {
			return withExitCode(1, fmt.Errorf("parse mib file: %w", err))
		}

		logger().WithField("count", n).Info("loaded mib file")
		fmt.Printf("loaded %d oid(s) under %s\n", n, root)
		return nil
	},
}
