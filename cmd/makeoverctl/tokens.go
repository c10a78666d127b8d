package main

import (
	"github.com/spf13/cobra"

	"github.com/Suyog-Rijal/Makeover-me-backend/cmd/makeoverctl/ui"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/auth"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
)

func tokenStore(cmd *cobra.Command, e *env) (auth.RefreshTokenRepository, error) {
	db, err := e.database(cmd.Context())
	if err != nil {
		return nil, err
	}
	if e.cfg.Auth.TokenStore != config.TokenStoreRedis {
		return auth.NewTokenStore(e.cfg.Auth.TokenStore, db, nil)
	}
	client, err := e.redisClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return auth.NewTokenStore(e.cfg.Auth.TokenStore, db, client)
}

func tokensCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain refresh-token bookkeeping",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired outstanding and blacklisted tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tokenStore(cmd, e)
			if err != nil {
				return err
			}
			if err := store.CleanupExpiredTokens(cmd.Context()); err != nil {
				return err
			}
			ui.PrintSuccess("Expired tokens removed.")
			return nil
		},
	})
	return cmd
}
