// Package config holds the ambient settings shared by cmd/schedcore's
// subcommands: where the store lives, how the HTTP server listens, and
// where computed schedules may be exported.
package config

import (
	"os"
	"path/filepath"
)

// Config holds configuration for the schedcore server and CLI.
type Config struct {
	Addr      string // Listen address (default ":8080")
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
	DBPath    string // SQLite database path (default ~/.schedcore/schedcore.db, ":memory:" for testing)
	S3Bucket  string // optional; enables export.S3Exporter when set
	S3Region  string // optional; defaults to the SDK's own region resolution when empty
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		DBPath:    defaultDBPath(),
	}
}

// defaultDBPath returns ~/.schedcore/schedcore.db, falling back to a
// relative path if the home directory can't be resolved.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".schedcore/schedcore.db"
	}
	return filepath.Join(home, ".schedcore", "schedcore.db")
}

// ExportEnabled reports whether an S3 bucket was configured.
func (c Config) ExportEnabled() bool {
	return c.S3Bucket != ""
}
