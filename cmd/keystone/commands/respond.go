package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/crypto"
)

func respondCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "respond <challenge-b64>",
		Short: "Answer an authentication challenge with your identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			challenge, err := crypto.FromB64(args[0])
			if err != nil {
				return err
			}
			resp, err := appCtx.IDs.Respond(passphrase, selected(), challenge)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), crypto.B64(resp))
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <identity-b64> <challenge-b64> <response-b64>",
		Short: "Verify an authentication response",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var decoded [3][]byte
			for i, a := range args {
				b, err := crypto.FromB64(a)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				decoded[i] = b
			}
			ok, err := appCtx.IDs.Check(decoded[0], decoded[1], decoded[2])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("response is not valid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "response OK")
			return nil
		},
	}
}
