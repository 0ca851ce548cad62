package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/domain"
)

func useCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <fingerprint>",
		Short: "Select the identity used when -i is not given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Store.SetActiveIdentity(domain.Fingerprint(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active identity: %s\n", args[0])
			return nil
		},
	}
}
