package main

import (
	"github.com/spf13/cobra"

	"github.com/Suyog-Rijal/Makeover-me-backend/cmd/makeoverctl/ui"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

func migrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := e.database(cmd.Context())
				if err != nil {
					return err
				}
				if err := database.MigrateUp(cmd.Context(), db.DB); err != nil {
					return err
				}
				ui.PrintSuccess("Migrations applied.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := confirmed(cmd, "Roll back the last migration?", "Tables created by it will be dropped.")
				if err != nil || !ok {
					return err
				}
				db, err := e.database(cmd.Context())
				if err != nil {
					return err
				}
				if err := database.MigrateDown(cmd.Context(), db.DB); err != nil {
					return err
				}
				ui.PrintSuccess("Rolled back one migration.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := e.database(cmd.Context())
				if err != nil {
					return err
				}
				return database.MigrateStatus(cmd.Context(), db.DB)
			},
		},
	)
	return cmd
}
