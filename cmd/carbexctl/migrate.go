package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"carbex/internal/config"
)

func newMigrateCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "migrate {up|down|steps N|force V|version}",
		Short: "Apply or roll back database migrations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			m, err := migrate.New(source, cfg.DB.DSN())
			if err != nil {
				return fmt.Errorf("failed to create migrate instance: %w", err)
			}
			defer m.Close()
			return runMigration(m, args, cmd)
		},
	}
	cmd.Flags().StringVar(&source, "source", "file://db/migrations", "migration source URL")
	return cmd
}

func runMigration(m *migrate.Migrate, args []string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		fmt.Fprintln(out, "migrations applied")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		fmt.Fprintln(out, "migrations reverted")
	case "steps", "force":
		if len(args) < 2 {
			return fmt.Errorf("%s requires a number argument", args[0])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid %s argument: %w", args[0], err)
		}
		if args[0] == "force" {
			if err := m.Force(n); err != nil {
				return fmt.Errorf("migration force failed: %w", err)
			}
			fmt.Fprintf(out, "version forced to %d\n", n)
			return nil
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration steps failed: %w", err)
		}
		fmt.Fprintf(out, "applied %d migration steps\n", n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		fmt.Fprintf(out, "version: %d, dirty: %v\n", version, dirty)
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
	return nil
}
