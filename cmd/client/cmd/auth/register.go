package auth

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timetrack/cmd/client/cmd/types"
	"timetrack/internal/domain/user"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		in := bufio.NewReader(os.Stdin)
		name, err := prompt(in, "User name: ")
		if err != nil {
			return err
		}
		email, err := prompt(in, "Email: ")
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		u, err := app.Register(cmd.Context(), user.CreateRequest{
			UserName: name,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}

		fmt.Println(color.GreenString("registered"), u.ID)
		fmt.Println("log in with: timetrack-client auth login")
		return nil
	},
}
