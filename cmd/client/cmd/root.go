package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"timetrack/cmd/client/cmd/auth"
	"timetrack/cmd/client/cmd/category"
	"timetrack/cmd/client/cmd/timer"
	"timetrack/cmd/client/cmd/types"
	"timetrack/internal/app/client"
	"timetrack/internal/app/client/config"
	"timetrack/internal/utils/logger"
)

var rootCmd = &cobra.Command{
	Use:   "timetrack-client",
	Short: "Command line client for the timetrack API",
	Long: `timetrack-client starts and stops time entries, files them under
categories and lists what was logged.

The API key is read from API_KEY and the server from SERVER_ADDRESS.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app := client.New(cfg, logger.New(cfg.Env))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, types.ClientAppKey, app))
	return nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server answers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.CheckConnection(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(color.GreenString("server is up"))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "server address, host:port")
	rootCmd.PersistentFlags().String("api-key", "", "API key sent with every entity request")
	_ = viper.BindPFlag("SERVER_ADDRESS", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("API_KEY", rootCmd.PersistentFlags().Lookup("api-key"))

	rootCmd.AddCommand(healthCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(category.CategoryCmd)
	category.CategoryCmd.AddCommand(category.ListCmd)
	category.CategoryCmd.AddCommand(category.CreateCmd)

	rootCmd.AddCommand(timer.StartCmd)
	rootCmd.AddCommand(timer.StopCmd)
	rootCmd.AddCommand(timer.ListCmd)
	rootCmd.AddCommand(timer.DeleteCmd)
}
