// Package cli implements the mxe-go CLI commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/mxe-go/internal/config"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

var cfgFile string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mxe-go",
	Short: "Confidential matching, eligibility and confession circuits",
	Long: "mxe-go runs the confidential circuits locally: every input is sealed by a party,\n" +
		"decrypted only inside the gateway, and every result is sealed to its recipient.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: ./mxe.yaml or ./configs/mxe.yaml)")
}

// env is what every circuit command needs.
type env struct {
	cfg    *mxe.Config
	logger logging.Logger
	gw     *gateway.Gateway
}

func (e *env) Close() error {
	return e.gw.Close()
}

// loadEnv loads configuration, builds the logger, and opens a gateway over the
// configured cluster key. Without a configured key it generates a throwaway
// one and says so.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	h, err := logging.NewHandler(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	logger := logging.New(slog.New(h))

	var gw *gateway.Gateway
	if cfg.ClusterKeyPath != "" {
		priv, err := config.LoadClusterKey(cfg.ClusterKeyPath)
		if err != nil {
			return nil, fmt.Errorf("load cluster key: %w", err)
		}
		gw, err = gateway.New(priv, gateway.WithLogger(logger))
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn(cmd.Context(), "no cluster_key_path configured; using an ephemeral cluster key")
		gw, err = gateway.Generate(gateway.WithLogger(logger))
		if err != nil {
			return nil, err
		}
	}

	return &env{cfg: cfg, logger: logger, gw: gw}, nil
}
