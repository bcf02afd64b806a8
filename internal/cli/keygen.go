package cli

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/mxe-go/internal/config"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
)

func init() {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a cluster key",
		Long:  "Generate a secp256k1 cluster key and write it hex-encoded with mode 0600. Existing files are never overwritten.",
		Args:  cobra.NoArgs,
		RunE:  runKeygen,
	}
	cmd.Flags().StringP("out", "o", "cluster.key", "Output path")
	RootCmd.AddCommand(cmd)
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	out, _ := cmd.Flags().GetString("out")

	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return err
	}
	defer priv.Zero()

	if err := config.WriteClusterKey(out, priv); err != nil {
		return err
	}

	gw, err := gateway.New(priv)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\ncluster %s\n", out, gw.ClusterRef())
	return nil
}
