// Package main provides the murmured CLI: a pass_persist MIB agent
// extension serving SNMP GET/GETNEXT/SET over stdio, plus the one-shot
// and administrative commands around it.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error onto spec.md §6's exit code vocabulary: 0 is
// implicit (no error), 1 for MIB/parsing/storage failure, 2 for
// scheduler-load/start failure, 255 for anything else, which in practice
// means cobra's own usage/argument-validation errors.
func exitCodeFor(err error) int {
	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	return 255
}

// exitCodeError pins a specific exit code to an error without the CLI
// layer needing to parse error strings.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitCodeError{code: code, err: err}
}
