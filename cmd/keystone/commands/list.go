package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List owned identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := appCtx.IDs.ListIdentities()
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No identities. Run init first.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "\tFINGERPRINT\tNAME\tSERVER\tAPI KEY\tCREATED")
			for _, r := range recs {
				mark := ""
				if r.Active {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					mark, r.Fingerprint, r.DisplayName, r.ServerURL, r.APIKeyStatus,
					time.Unix(r.CreatedUTC, 0).UTC().Format(time.DateOnly))
			}
			return w.Flush()
		},
	}
}
