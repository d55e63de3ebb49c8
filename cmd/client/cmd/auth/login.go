package auth

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timetrack/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the account",
	Long: `Checks the credentials against the server. On success the account id
is kept under CONFIG_DIR for the following commands.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		email, err := prompt(bufio.NewReader(os.Stdin), "Email: ")
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		id, err := app.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}

		fmt.Println(color.GreenString("logged in as"), id)
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}
