package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Suyog-Rijal/Makeover-me-backend/cmd/makeoverctl/ui"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

func userCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	lookup := func(cmd *cobra.Command, email string) (*user.Store, *user.User, error) {
		db, err := e.database(cmd.Context())
		if err != nil {
			return nil, nil, err
		}
		store := user.NewStore(db, user.NewHasher(user.DefaultHashParams))
		u, err := store.FindByEmail(cmd.Context(), email)
		if err != nil {
			return nil, nil, fmt.Errorf("lookup %s: %w", email, err)
		}
		return store, u, nil
	}

	disable := &cobra.Command{
		Use:   "disable <email>",
		Short: "Block login and revoke every refresh token of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, u, err := lookup(cmd, args[0])
			if err != nil {
				return err
			}
			ok, err := confirmed(cmd, "Disable "+u.Email+"?", "Existing sessions end when their access token expires.")
			if err != nil || !ok {
				return err
			}
			if err := store.SetActive(cmd.Context(), u.ID, false); err != nil {
				return err
			}

			tokens, err := tokenStore(cmd, e)
			if err != nil {
				return err
			}
			if err := tokens.RevokeAllUserTokens(cmd.Context(), u.ID); err != nil {
				return fmt.Errorf("account disabled but token revocation failed: %w", err)
			}
			ui.PrintSuccess("Account disabled.")
			return nil
		},
	}

	enable := &cobra.Command{
		Use:   "enable <email>",
		Short: "Allow a disabled account to log in again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, u, err := lookup(cmd, args[0])
			if err != nil {
				return err
			}
			if err := store.SetActive(cmd.Context(), u.ID, true); err != nil {
				return err
			}
			ui.PrintSuccess("Account enabled.")
			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify <email>",
		Short: "Mark an account's email as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, u, err := lookup(cmd, args[0])
			if err != nil {
				return err
			}
			changed, err := store.MarkVerified(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("Email already verified.")
				return nil
			}
			ui.PrintSuccess("Email verified.")
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <email>",
		Short: "Print account state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, u, err := lookup(cmd, args[0])
			if err != nil {
				return err
			}
			ui.PrintTitle(u.Email)
			ui.PrintRow("ID", u.ID.String())
			ui.PrintRow("Name", u.FullName)
			ui.PrintRow("Active", fmt.Sprint(u.IsActive))
			ui.PrintRow("Verified", fmt.Sprint(u.IsVerified))
			ui.PrintRow("Google", fmt.Sprint(u.IsGoogleUser))
			return nil
		},
	}

	cmd.AddCommand(disable, enable, verify, show)
	return cmd
}
