package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/snmpext/murmured/internal/agent"
	"github.com/snmpext/murmured/internal/config"
	"github.com/snmpext/murmured/internal/logging"
	"github.com/snmpext/murmured/internal/paths"
)

var (
	flagConfigFile string
	flagLogLevel   string
	flagLogFile    string
	flagDBPath     string

	logFileHandle *os.File
	ag            *agent.Agent
)

var rootCmd = &cobra.Command{
	Use:   "murmured",
	Short: "murmured is a pass_persist MIB agent extension",
	Long: `murmured plugs into an external SNMP master agent over its
pass_persist co-process protocol. It maintains a typed, persistent tree
of OIDs, serves GET/GETNEXT/SET, and runs shell command schedules
attached to OIDs on GET/SET/INIT/AUTO events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: murmured.yaml in . or /etc/murmured)")
	rootCmd.PersistentFlags().StringVarP(&flagLogLevel, "log-level", "l", "", "log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log-file", "L", "", "log file path")
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db-path", "d", "", "database path")

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(getNextCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(parseMibCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(dumpScheduleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(changeCmd)
}

// setup resolves configuration, opens the log file and the coordinator
// agent (storage, MIB table, scheduler), mapping any failure onto
// spec.md §6's exit codes via internal/agent.OpenError's stage.
func setup(cmd *cobra.Command) error {
	cfg, err := config.Load(flagConfigFile, config.Flags{LogLevel: flagLogLevel, LogFile: flagLogFile, DBPath: flagDBPath})
	if err != nil {
		return withExitCode(1, fmt.Errorf("load config: %w", err))
	}

	if err := os.MkdirAll(paths.DataDir(cfg.LogFile), 0o755); err != nil {
		return withExitCode(1, fmt.Errorf("create log directory: %w", err))
	}
	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return withExitCode(1, fmt.Errorf("open log file %s: %w", cfg.LogFile, err))
	}
	logFileHandle = f
	log := logging.New(f, cfg.LogLevel)

	a, err := agent.Open(cfg.DBPath, log)
	if err != nil {
		var openErr *agent.OpenError
		code := 1
		if errors.As(err, &openErr) && openErr.Stage == agent.StageScheduler {
			code = 2
		}
		return withExitCode(code, fmt.Errorf("open agent: %w", err))
	}
	ag = a
	return nil
}

func teardown() error {
	var err error
	if ag != nil {
		err = ag.Close()
		ag = nil
	}
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
	return err
}

// logger returns the agent's logger, or a discarding one before setup.
func logger() *logrus.Logger {
	if ag == nil {
		return logging.Discard()
	}
	return ag.Log
}
