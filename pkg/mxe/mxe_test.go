package mxe

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestVersionFallback(t *testing.T) {
	if got := ModuleVersion(); got != "v0.0.0-in-progress" {
		t.Fatalf("ModuleVersion() = %q", got)
	}
	if got := BuildCommit(); got != "unknown" {
		t.Fatalf("BuildCommit() = %q", got)
	}
}

func TestZeroizeBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	ZeroizeBytes(buf)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
	ZeroizeBytes(nil)
}

func TestInvocationIDs(t *testing.T) {
	a, b := NewInvocationID(), NewInvocationID()
	if a == b {
		t.Fatal("invocation IDs must differ")
	}
	if _, err := ulid.Parse(a.String()); err != nil {
		t.Fatalf("not a ULID: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"sqlite with path", func(c *Config) { c.Counter = CounterConfig{Driver: CounterDriverSQLite, Path: "c.db"} }, false},
		{"pebble without path", func(c *Config) { c.Counter = CounterConfig{Driver: CounterDriverPebble} }, true},
		{"empty driver", func(c *Config) { c.Counter.Driver = "" }, true},
		{"unknown driver", func(c *Config) { c.Counter.Driver = "etcd" }, true},
		{"json logs", func(c *Config) { c.Log.Format = "json" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
