package main

import (
	"fmt"

	"github.com/feewise/feewise/cmd"
	"github.com/feewise/feewise/pkg/backend"
	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/migrate"
	"github.com/feewise/feewise/pkg/store"
	"github.com/spf13/cobra"
)

var (
	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Administrate the registry",
	}

	migrateCmd = &cobra.Command{
		Use:                "migrate",
		Short:              "Migrate the database to the latest version",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			dbx := db.FromContext(ctx)
			if err := migrate.Migrate(ctx, dbx); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			return nil
		},
	}

	rollbackCmd = &cobra.Command{
		Use:                "rollback",
		Short:              "Rollback the database to the previous version",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			dbx := db.FromContext(ctx)
			if err := migrate.Rollback(ctx, dbx); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}

			return nil
		},
	}

	statsCmd = &cobra.Command{
		Use:                "stats",
		Short:              "Print aggregate fee type and fee item figures",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			ftStats, err := be.FeeTypeStats(ctx, nil)
			if err != nil {
				return err
			}

			fiStats, err := be.FeeItemStats(ctx, store.FeeItemStatsFilter{})
			if err != nil {
				return err
			}

			return writeJSON(c.OutOrStdout(), map[string]any{
				"fee_types": ftStats,
				"fee_items": fiStats,
			})
		},
	}
)

func init() {
	adminCmd.AddCommand(
		migrateCmd,
		rollbackCmd,
		statsCmd,
	)
}
