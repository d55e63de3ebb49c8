package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/config"
	"timetrack/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "timetrack",
	Short: "Timetrack - time tracking API server",
	Long: `Timetrack serves a REST API for users, categories and logged time.

Settings come from the environment, optionally seeded from a .env file in
the working directory. Flags override both.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = logger.New(cfg.Env)
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("env", "", "environment: local, dev or prod")
	rootCmd.PersistentFlags().String("database-uri", "", "postgres connection string, empty for the in-memory store")
	rootCmd.PersistentFlags().String("migrations", "", "directory holding the migration files")

	_ = viper.BindPFlag("app_env", rootCmd.PersistentFlags().Lookup("env"))
	_ = viper.BindPFlag("database_uri", rootCmd.PersistentFlags().Lookup("database-uri"))
	_ = viper.BindPFlag("migrations_path", rootCmd.PersistentFlags().Lookup("migrations"))
}
