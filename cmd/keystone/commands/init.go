package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/domain"
)

func detailsFlags(cmd *cobra.Command, d *domain.IdentityDetails) {
	cmd.Flags().StringVar(&d.FirstName, "first-name", "", "first name shown to contacts")
	cmd.Flags().StringVar(&d.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&d.Company, "company", "", "company")
	cmd.Flags().StringVar(&d.Position, "position", "", "position")
}

func initCmd() *cobra.Command {
	var details domain.IdentityDetails
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an identity and store it securely",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			rec, mnemonic, err := appCtx.IDs.GenerateIdentity(passphrase, appCtx.Config.ServerURL, details)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Identity created.\nFingerprint: %s\n", rec.Fingerprint)
			fmt.Fprintf(out, "Recovery phrase (write it down, it is shown once):\n%s\n", mnemonic)
			return nil
		},
	}
	detailsFlags(cmd, &details)
	return cmd
}
