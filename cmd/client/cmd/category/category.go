package category

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timetrack/cmd/client/cmd/types"
)

var CategoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage categories",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		categories, err := app.Categories(cmd.Context())
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			fmt.Println("no categories yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tENTRIES")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Color, len(c.Times))
		}
		return w.Flush()
	},
}

var categoryColor string

var CreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		c, err := app.CreateCategory(cmd.Context(), args[0], categoryColor)
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		fmt.Println(color.GreenString("created"), c.ID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&categoryColor, "color", "#888888", "display color")
}
