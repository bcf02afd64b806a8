package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mxe-go %s (commit %s, wire v%d)\n",
				mxe.ModuleVersion(), mxe.BuildCommit(), mxe.WireVersion)
		},
	})
}
