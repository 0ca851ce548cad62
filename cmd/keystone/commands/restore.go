package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keystone/internal/domain"
)

func restoreCmd() *cobra.Command {
	var details domain.IdentityDetails
	cmd := &cobra.Command{
		Use:   "restore <word>...",
		Short: "Re-create an identity from its recovery phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			mnemonic := strings.Join(strings.Fields(strings.Join(args, " ")), " ")
			rec, err := appCtx.IDs.RestoreIdentity(passphrase, appCtx.Config.ServerURL, mnemonic, details)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Identity restored.\nFingerprint: %s\n", rec.Fingerprint)
			return nil
		},
	}
	detailsFlags(cmd, &details)
	return cmd
}
