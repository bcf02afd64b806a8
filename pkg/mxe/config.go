package mxe

import (
	"errors"
	"fmt"
	"strings"
)

// Counter store drivers understood by Config.
const (
	CounterDriverMemory = "memory"
	CounterDriverSQLite = "sqlite"
	CounterDriverPebble = "pebble"
)

// Config expresses the knobs needed to stand up a computation node and its
// caller-side counter cell.
type Config struct {
	// ClusterKeyPath points at a file holding the hex-encoded 32-byte cluster
	// private key. The key lives for the operational lifetime of the system.
	ClusterKeyPath string `mapstructure:"cluster_key_path"`

	Counter CounterConfig `mapstructure:"counter"`
	Log     LogConfig     `mapstructure:"log"`
}

// CounterConfig selects where the counter ciphertext is persisted between
// counter-policy submissions.
type CounterConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// LogConfig controls the slog handler built for the CLI.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration that keeps everything in memory.
func DefaultConfig() Config {
	return Config{
		Counter: CounterConfig{Driver: CounterDriverMemory},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Validate performs structural checks only; it does not touch the filesystem.
func (c Config) Validate() error {
	switch c.Counter.Driver {
	case CounterDriverMemory:
	case CounterDriverSQLite, CounterDriverPebble:
		if c.Counter.Path == "" {
			return fmt.Errorf("counter: driver %q requires a path", c.Counter.Driver)
		}
	case "":
		return errors.New("counter: driver is required")
	default:
		return fmt.Errorf("counter: unknown driver %q", c.Counter.Driver)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}
