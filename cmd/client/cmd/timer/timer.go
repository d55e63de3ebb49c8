// Package timer holds the commands that log time.
package timer

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"timetrack/cmd/client/cmd/types"
	"timetrack/internal/domain/timelog"
)

var categoryID string

var StartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a running time entry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		var category *uuid.UUID
		if categoryID != "" {
			id, err := uuid.Parse(categoryID)
			if err != nil {
				return fmt.Errorf("category id: %w", err)
			}
			category = &id
		}

		e, err := app.Start(cmd.Context(), strings.Join(args, " "), category)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		fmt.Printf("%s %s at %s\n", color.GreenString("started"), e.ID, e.StartTime.Local().Format(time.Kitchen))
		return nil
	},
}

var StopCmd = &cobra.Command{
	Use:   "stop [id]",
	Short: "Stop a running entry, the latest one when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		var target *uuid.UUID
		if len(args) == 1 {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("time id: %w", err)
			}
			target = &id
		}

		e, err := app.Stop(cmd.Context(), target)
		if err != nil {
			return fmt.Errorf("stop: %w", err)
		}
		fmt.Printf("%s %q after %s\n", color.YellowString("stopped"), e.Name, duration(e))
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your time entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		entries, err := app.Times(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("nothing logged yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTART\tDURATION")
		for _, e := range entries {
			name := "-"
			if e.Category != nil {
				name = e.Category.Name
			}
			dur := duration(e)
			if e.EndTime == nil {
				dur = color.CyanString("running")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Name, name, e.StartTime.Local().Format(time.DateTime), dur)
		}
		return w.Flush()
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("time id: %w", err)
		}
		if err := app.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		fmt.Println(color.GreenString("deleted"), id)
		return nil
	},
}

func duration(e timelog.Entry) string {
	end := time.Now()
	if e.EndTime != nil {
		end = *e.EndTime
	}
	return end.Sub(e.StartTime).Truncate(time.Second).String()
}

func init() {
	StartCmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id to file the entry under")
}
