package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timetrack/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migrator().Up(); err != nil {
			return err
		}
		return printVersion()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		if !force {
			return errors.New("down drops every table, rerun with --force")
		}
		if err := migrator().Down(); err != nil {
			return err
		}
		color.Yellow("schema rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(_ *cobra.Command, _ []string) error {
		return printVersion()
	},
}

var force bool

func migrator() *migration.Migration {
	return migration.NewMigration(cfg.DB, migration.DefaultEngine)
}

func printVersion() error {
	version, dirty, err := migrator().Version()
	if err != nil {
		return err
	}
	if dirty {
		color.Red("schema version %d (dirty)", version)
		return nil
	}
	color.Green("schema version %d", version)
	return nil
}

func init() {
	migrateDownCmd.Flags().BoolVar(&force, "force", false, "confirm the rollback")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
