package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avnerell/dayweave/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Track how long recurring tasks actually take",
	}
	cmd.AddCommand(newHistoryRecordCmd(app), newHistoryShowCmd(app))
	return cmd
}

func newHistoryRecordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "record TASK MINUTES",
		Short: "Record an observed task duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %q", args[1])
			}
			rec, err := app.History.Record(context.Background(), app.UserID, args[0], minutes)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s (avg %d min)\n", rec.TaskName, joinDurations(rec.DurationsMin), rec.AverageMin())
			return nil
		},
	}
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TASK",
		Short: "Show recorded durations for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.History.Show(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header("History " + rec.TaskName))
			fmt.Printf("  Durations: %s min\n", joinDurations(rec.DurationsMin))
			fmt.Printf("  Average:   %d min\n", rec.AverageMin())
			return nil
		},
	}
}

func joinDurations(durations []int) string {
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}
