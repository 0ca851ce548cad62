package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/crypto"
	"keystone/internal/identity"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [identity-b64]",
		Short: "Print the fingerprint of your identity or of a shared one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = crypto.FromB64(args[0])
			} else {
				raw, err = appCtx.IDs.ExportIdentity(selected())
			}
			if err != nil {
				return err
			}
			id, err := identity.Parse(raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", id.Fingerprint())
			return nil
		},
	}
}
