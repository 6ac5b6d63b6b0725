// Package paths resolves the on-disk locations murmured uses when the
// operator hasn't overridden them with a flag, environment variable, or
// config file entry.
package paths

import "path/filepath"

// Environment variable names for overrides, read by the config layer
// before falling back to these defaults.
const (
	EnvDatabasePath = "MURMURED_DB_PATH"
	EnvLogFile      = "MURMURED_LOG_FILE"
	EnvLogLevel     = "MURMURED_LOG_LEVEL"
)

// Defaults for a daemon typically run under a system service manager,
// mirroring net-snmp's own convention of a fixed /var tree rather than a
// per-user XDG directory.
const (
	DefaultDatabasePath = "/var/lib/murmured/murmured.db"
	DefaultLogFile      = "/var/log/murmured.log"
	DefaultLogLevel     = "info"
)

// DataDir returns the directory a database path lives in, for MkdirAll.
func DataDir(dbPath string) string {
	return filepath.Dir(dbPath)
}
