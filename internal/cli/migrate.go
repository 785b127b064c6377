package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sakif/reconnect/internal/repository/gormdb"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update every table, then exit.

The database defaults to DATABASE_URL from the loaded configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if databaseURL == "" {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				databaseURL, level = cfg.DatabaseURL, cfg.LogLevel
			}
			logger := newLogger(cmd, level)

			db, err := gormdb.Open(databaseURL, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "database to migrate (overrides DATABASE_URL)")
	return cmd
}
