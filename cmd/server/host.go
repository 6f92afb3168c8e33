package main

import (
	"github.com/spf13/cobra"

	accountspg "github.com/jrsteele09/surf-club-server/accounts/postgres"
	"github.com/jrsteele09/surf-club-server/internal/store"
)

// NewHostCmd creates the host subcommand. Accounts never become hosts
// through the API; an operator promotes them here.
func NewHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Grant or revoke host rights",
	}
	cmd.AddCommand(newHostChangeCmd("grant", "Make an account a host", true))
	cmd.AddCommand(newHostChangeCmd("revoke", "Remove host rights from an account", false))
	return cmd
}

func newHostChangeCmd(use, short string, isHost bool) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := databaseURL(cmd)
			if err != nil {
				return err
			}
			pool, err := store.Connect(cmd.Context(), url)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := accountspg.NewAccountRepo(pool)
			acct, err := repo.GetByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			if err := repo.SetHost(cmd.Context(), acct.ID, isHost); err != nil {
				return err
			}
			cmd.Printf("%s: host=%t\n", acct.Email, isHost)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
