package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"timetrack/internal/app/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. With a database configured pending migrations
are applied first. SIGINT or SIGTERM drains in-flight requests and exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		return app.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, for example :3000")
	_ = viper.BindPFlag("run_address", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
