package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"keystone/internal/app"
	"keystone/internal/domain"
)

var (
	home        string
	passphrase  string
	serverURL   string
	fingerprint string
	appCtx      *app.App
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keystone",
		Short:         "Cryptographic identities: keys, signatures and sealed messages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".keystone")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			log, err := app.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx, err = app.New(cfg, log)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.keystone)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the identity")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "server URL for new identities (overrides config)")
	root.PersistentFlags().StringVarP(&fingerprint, "identity", "i", "", "fingerprint of the identity to use (default: active)")

	root.AddCommand(
		initCmd(),
		restoreCmd(),
		listCmd(),
		useCmd(),
		fingerprintCmd(),
		exportCmd(),
		signCmd(),
		verifyCmd(),
		sealCmd(),
		openCmd(),
		respondCmd(),
		checkCmd(),
		batchCmd(),
	)
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

func selected() domain.Fingerprint { return domain.Fingerprint(fingerprint) }
