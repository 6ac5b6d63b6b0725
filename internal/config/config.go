// Package config resolves murmured's settings (log level, log file,
// database path) from, in precedence order, CLI flags, environment
// variables, a config file, and finally the built-in defaults in
// internal/paths. It follows the teacher's viper-based loadConfig shape:
// a *viper.Viper is built once at startup and the CLI layer reads out of
// it rather than passing raw strings around.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/snmpext/murmured/internal/paths"
)

// Keys used in the config file and as MURMURED_ environment variables.
const (
	KeyLogLevel = "log_level"
	KeyLogFile  = "log_file"
	KeyDBPath   = "db_path"
)

// Config is the resolved, flattened settings murmured runs with.
type Config struct {
	LogLevel string
	LogFile  string
	DBPath   string
}

// Flags carries the raw --log-level/--log-file/--db-path flag values from
// the CLI layer; empty means "not set on the command line".
type Flags struct {
	LogLevel string
	LogFile  string
	DBPath   string
}

// Load builds a Config by layering flags over environment variables
// (MURMURED_LOG_LEVEL, MURMURED_LOG_FILE, MURMURED_DB_PATH) over an
// optional config file over built-in defaults.
//
// configFile may be empty, in which case only the built-in search paths
// ("murmured.yaml" in the working directory and /etc/murmured/) are
// consulted; a missing config file is not an error.
func Load(configFile string, flags Flags) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyLogLevel, paths.DefaultLogLevel)
	v.SetDefault(KeyLogFile, paths.DefaultLogFile)
	v.SetDefault(KeyDBPath, paths.DefaultDatabasePath)

	v.SetEnvPrefix("murmured")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = v.BindEnv(KeyLogLevel)
	_ = v.BindEnv(KeyLogFile)
	_ = v.BindEnv(KeyDBPath)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("murmured")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/murmured")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags.LogLevel != "" {
		v.Set(KeyLogLevel, flags.LogLevel)
	}
	if flags.LogFile != "" {
		v.Set(KeyLogFile, flags.LogFile)
	}
	if flags.DBPath != "" {
		v.Set(KeyDBPath, flags.DBPath)
	}

	return Config{
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		DBPath:   v.GetString(KeyDBPath),
	}, nil
}
