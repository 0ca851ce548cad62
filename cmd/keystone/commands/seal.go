package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/crypto"
)

// seal <identity-b64> <message>: encrypt to a peer.
func sealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal <identity-b64> <message>",
		Short: "Encrypt a message to a shared identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := crypto.FromB64(args[0])
			if err != nil {
				return fmt.Errorf("identity: %w", err)
			}
			sealed, err := appCtx.Messages.Seal(peer, []byte(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), crypto.B64(sealed))
			return nil
		},
	}
}

// open <sealed-b64>: decrypt with the selected identity.
func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <sealed-b64>",
		Short: "Decrypt a message sealed to your identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sealed, err := crypto.FromB64(args[0])
			if err != nil {
				return err
			}
			pt, err := appCtx.Messages.Open(passphrase, selected(), sealed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pt))
			return nil
		},
	}
}
