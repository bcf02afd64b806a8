// Package config loads mxe.Config from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

// EnvPrefix prefixes every environment override, e.g. MXE_COUNTER_DRIVER.
const EnvPrefix = "MXE"

// Load reads configuration from cfgFile (or ./mxe.yaml, ./configs/mxe.yaml if
// empty) and MXE_* environment variables, then validates it.
func Load(cfgFile string) (*mxe.Config, error) {
	v := viper.New()

	def := mxe.DefaultConfig()
	v.SetDefault("cluster_key_path", def.ClusterKeyPath)
	v.SetDefault("counter.driver", def.Counter.Driver)
	v.SetDefault("counter.path", def.Counter.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	if cfgFile != "" {
		abs, err := SecurePath(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("secure path: %w", err)
		}
		v.SetConfigFile(abs)
	} else {
		v.SetConfigName("mxe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &mxe.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs mxe.Config.Validate and checks that every configured path
// stays inside the working directory. It does not open files.
func Validate(cfg *mxe.Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.ClusterKeyPath != "" {
		if _, err := SecurePath(cfg.ClusterKeyPath); err != nil {
			return fmt.Errorf("cluster_key_path: %w", err)
		}
	}
	if cfg.Counter.Path != "" {
		if _, err := SecurePath(cfg.Counter.Path); err != nil {
			return fmt.Errorf("counter.path: %w", err)
		}
	}
	return nil
}

// SecurePath validates that a file path doesn't escape the working directory.
// This prevents path traversal attacks when loading user-specified files.
func SecurePath(path string) (string, error) {
	clean := filepath.Clean(path)
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	base, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return absPath, nil
}
