package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/cmd/makeoverctl/ui"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

// env holds connections opened on demand by subcommands.
type env struct {
	cfg   *config.Config
	db    *bun.DB
	redis *redis.Client
}

func (e *env) load() error {
	if e.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	e.cfg = cfg
	return nil
}

func (e *env) database(ctx context.Context) (*bun.DB, error) {
	if err := e.load(); err != nil {
		return nil, err
	}
	if e.db == nil {
		db, err := database.Open(ctx, e.cfg.Database)
		if err != nil {
			return nil, err
		}
		e.db = db
	}
	return e.db, nil
}

func (e *env) redisClient(ctx context.Context) (*redis.Client, error) {
	if err := e.load(); err != nil {
		return nil, err
	}
	if e.redis == nil {
		client, err := database.OpenRedis(ctx, e.cfg.Redis)
		if err != nil {
			return nil, err
		}
		e.redis = client
	}
	return e.redis, nil
}

func (e *env) close() {
	if e.db != nil {
		e.db.Close()
	}
	if e.redis != nil {
		e.redis.Close()
	}
}

// confirmed returns true when --yes was given or the operator agrees.
func confirmed(cmd *cobra.Command, title, description string) (bool, error) {
	yes, _ := cmd.Flags().GetBool("yes")
	if yes {
		return true, nil
	}
	ok, err := ui.Confirm(title, description)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("Aborted.")
	}
	return ok, nil
}

func main() {
	e := &env{}
	defer e.close()

	rootCmd := &cobra.Command{
		Use:           "makeoverctl",
		Short:         "Operator tasks for the Makeover Me backend",
		Long:          "Run migrations and manage accounts, catalog, locations and refresh tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")

	rootCmd.AddCommand(
		migrateCmd(e),
		userCmd(e),
		catalogCmd(e),
		locationCmd(e),
		tokensCmd(e),
	)

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		e.close()
		os.Exit(1)
	}
}
