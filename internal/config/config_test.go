package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, mxe.DefaultConfig(), *cfg)
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())

	yaml := []byte(`cluster_key_path: keys/cluster.hex
counter:
  driver: sqlite
  path: data/counter.db
log:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile("mxe.yaml", yaml, 0o600))

	cfg, err := Load("mxe.yaml")
	require.NoError(t, err)
	require.Equal(t, "keys/cluster.hex", cfg.ClusterKeyPath)
	require.Equal(t, mxe.CounterConfig{Driver: mxe.CounterDriverSQLite, Path: "data/counter.db"}, cfg.Counter)
	require.Equal(t, mxe.LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MXE_COUNTER_DRIVER", "pebble")
	t.Setenv("MXE_COUNTER_PATH", "data/pebble")
	t.Setenv("MXE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, mxe.CounterDriverPebble, cfg.Counter.Driver)
	require.Equal(t, "data/pebble", cfg.Counter.Path)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		yaml string
	}{
		{"unknown driver", "counter:\n  driver: redis\n"},
		{"sqlite without path", "counter:\n  driver: sqlite\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"escaping counter path", "counter:\n  driver: pebble\n  path: ../elsewhere\n"},
		{"escaping key path", "cluster_key_path: ../../etc/key\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile("bad.yaml", []byte(tt.yaml), 0o600))
			_, err := Load("bad.yaml")
			require.Error(t, err)
		})
	}
}

func TestLoadRejectsEscapingConfigPath(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("../outside.yaml")
	require.Error(t, err)
}

func TestSecurePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"mxe.yaml", false},
		{"configs/mxe.yaml", false},
		{"./a/../b", false},
		{"..", true},
		{"../x", true},
		{"a/../../x", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			abs, err := SecurePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, filepath.IsAbs(abs))
		})
	}
}

func TestClusterKeyRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())

	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	require.NoError(t, WriteClusterKey("cluster.hex", priv))
	require.Error(t, WriteClusterKey("cluster.hex", priv), "must not overwrite")

	info, err := os.Stat("cluster.hex")
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadClusterKey("cluster.hex")
	require.NoError(t, err)
	require.True(t, loaded.PubKey().IsEqual(priv.PubKey()))
}

func TestLoadClusterKeyRejectsGarbage(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile("short.hex", []byte("abcd\n"), 0o600))
	_, err := LoadClusterKey("short.hex")
	require.Error(t, err)

	require.NoError(t, os.WriteFile("nothex.hex", []byte("zz"), 0o600))
	_, err = LoadClusterKey("nothex.hex")
	require.Error(t, err)
}
