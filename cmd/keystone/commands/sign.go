package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/crypto"
)

// sign <message>: sign with the selected identity.
func signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message with your identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sig, err := appCtx.IDs.Sign(passphrase, selected(), []byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), crypto.B64(sig))
			return nil
		},
	}
}

// verify <identity-b64> <message> <signature-b64>
func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <identity-b64> <message> <signature-b64>",
		Short: "Check a signature against a shared identity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := crypto.FromB64(args[0])
			if err != nil {
				return fmt.Errorf("identity: %w", err)
			}
			sig, err := crypto.FromB64(args[2])
			if err != nil {
				return fmt.Errorf("signature: %w", err)
			}
			ok, err := appCtx.IDs.Verify(peer, []byte(args[1]), sig)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("signature is not valid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signature OK")
			return nil
		},
	}
}
