package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snmpext/murmured/internal/scheduler"
	"github.com/snmpext/murmured/internal/schedparser"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [file]",
	Short: "Load event schedules from a file, or enter the interactive prompt",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return scheduleFromFile(args[0])
		}
		return scheduleInteractive(cmd)
	},
}

func scheduleFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return withExitCode(1, fmt.Errorf("open scheduling file: %w", err))
	}
	defer f.Close()

	ag.Lock()
	n, err := schedparser.LoadFile(ag.Store, ag.Scheduler, f)
	ag.Unlock()
	if err != nil {
		return withExitCode(1, fmt.Errorf("parse scheduling file: %w", err))
	}

	fmt.Printf("loaded %d event(s)\n", n)
	return nil
}

const quit = "QUIT"

// scheduleInteractive implements spec.md §6's interactive schedule prompt:
// OID, mode, a timeout if AUTO, then command lines until a blank line.
// QUIT at any prompt ends the session, committing events already
// confirmed in earlier iterations of the loop.
func scheduleInteractive(cmd *cobra.Command) error {
	in := bufio.NewReader(cmd.InOrStdin())
	committed := 0

	for {
		oid, ok := prompt(in, "OID (or QUIT): ")
		if !ok || oid == quit {
			break
		}

		modeLine, ok := prompt(in, "Mode [GET/SET/AUTO/INIT] (or QUIT): ")
		if !ok || modeLine == quit {
			break
		}
		mode, ok := parseMode(modeLine)
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "unknown mode %q, skipping event\n", modeLine)
			continue
		}

		timeout := 0
		if mode == scheduler.ModeAuto {
			timeoutLine, ok := prompt(in, "Timeout (seconds): ")
			if !ok || timeoutLine == quit {
				break
			}
			t, err := strconv.Atoi(timeoutLine)
			if err != nil || t <= 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "invalid timeout %q, skipping event\n", timeoutLine)
				continue
			}
			timeout = t
		}

		commands, aborted := promptCommands(cmd, in)
		if aborted {
			break
		}

		ag.Lock()
		err := ag.Scheduler.PutEvent(scheduler.Event{OID: oid, Mode: mode, Timeout: timeout, Commands: commands})
		ag.Unlock()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "could not save event: %v\n", err)
			continue
		}
		committed++
	}

	fmt.Printf("committed %d event(s)\n", committed)
	return nil
}

func promptCommands(cmd *cobra.Command, in *bufio.Reader) (commands []string, aborted bool) {
	for {
		line, ok := prompt(in, "Command (blank line to finish, QUIT to abort): ")
		if !ok || line == quit {
			return nil, true
		}
		if line == "" {
			return commands, false
		}
		commands = append(commands, line)
	}
}

func prompt(in *bufio.Reader, label string) (string, bool) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func parseMode(s string) (scheduler.Mode, bool) {
	switch strings.ToUpper(s) {
	case "GET":
		return scheduler.ModeGet, true
	case "SET":
		return scheduler.ModeSet, true
	case "AUTO":
		return scheduler.ModeAuto, true
	case "INIT":
		return scheduler.ModeInit, true
	default:
		return "", false
	}
}
