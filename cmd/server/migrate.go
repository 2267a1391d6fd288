package main

import (
	"context"
	"strconv"
	"time"

	"alcyxob/coaching-app/internal/config"
	"alcyxob/coaching-app/internal/repository/mongo"
	"alcyxob/coaching-app/internal/repository/sqlite"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations (or build indexes on mongodb)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DatabaseMongo {
				return ensureMongoIndexes(cmd, cfg)
			}
			return withSQLite(cfg, func(db *sqlx.DB) error {
				if err := sqlite.MigrateUp(db); err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "migrations applied")
				return printVersion(cmd, db)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return errors.Newf("steps must be a positive number, got %q", args[0])
				}
				steps = n
			}
			cfg, err := sqliteConfig(opts.configPath)
			if err != nil {
				return err
			}
			return withSQLite(cfg, func(db *sqlx.DB) error {
				if err := sqlite.MigrateDown(db, steps); err != nil {
					return err
				}
				color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
				return printVersion(cmd, db)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sqliteConfig(opts.configPath)
			if err != nil {
				return err
			}
			return withSQLite(cfg, func(db *sqlx.DB) error {
				return printVersion(cmd, db)
			})
		},
	})

	return cmd
}

func sqliteConfig(configPath string) (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if cfg.Database.Driver != config.DatabaseSQLite {
		return cfg, errors.Newf("schema versions only exist for the sqlite driver (configured: %s)", cfg.Database.Driver)
	}
	return cfg, nil
}

func withSQLite(cfg config.Config, fn func(db *sqlx.DB) error) error {
	db, err := sqlite.ConnectDB(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer sqlite.DisconnectDB(db)
	return fn(db)
}

func printVersion(cmd *cobra.Command, db *sqlx.DB) error {
	version, dirty, ok, err := sqlite.SchemaVersion(db)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case !ok:
		color.New(color.FgYellow).Fprintln(out, "schema version: none")
	case dirty:
		color.New(color.FgRed).Fprintf(out, "schema version: %d (dirty)\n", version)
	default:
		color.New(color.FgCyan).Fprintf(out, "schema version: %d\n", version)
	}
	return nil
}

func ensureMongoIndexes(cmd *cobra.Command, cfg config.Config) error {
	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return err
	}
	defer mongo.DisconnectDB(client)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(ctx, client.Database(cfg.Database.Name)); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "mongodb indexes ensured")
	return nil
}
