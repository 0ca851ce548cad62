package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/crypto"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print your shareable identity as base64",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := appCtx.IDs.ExportIdentity(selected())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), crypto.B64(raw))
			return nil
		},
	}
}
