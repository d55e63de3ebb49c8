package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"timetrack/internal/app/server/crypto"
)

var digestCmd = &cobra.Command{
	Use:   "digest [key]",
	Short: "Print the API_SECRET value for a key",
	Long: `Print the digest of an API key under the configured API_KEY_SALT and
API_KEY_ALGORITHM. Put the output in API_SECRET.

Without an argument the key is read from the terminal without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, err := crypto.NewKeyGate("", cfg.APIKey.Salt, crypto.Algorithm(cfg.APIKey.Algorithm))
		if err != nil {
			return err
		}

		key := ""
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("read key: %w", err)
			}
			key = string(raw)
		}
		if key == "" {
			return errors.New("key must not be empty")
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.CyanString("algorithm:"), gate.Algorithm())
		fmt.Fprintln(cmd.OutOrStdout(), gate.Digest(key))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
}
