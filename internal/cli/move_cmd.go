package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avnerell/dayweave/internal/cli/formatter"
	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/timewindow"
)

func newMoveCmd(app *App) *cobra.Command {
	var dayStr, start, end, eventID string

	cmd := &cobra.Command{
		Use:   "move TITLE",
		Short: "Move an event and reflow the day's movable events",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			if title == "" && eventID == "" {
				return fmt.Errorf("a title or --id is required")
			}

			day, err := dayFlagValue(dayStr, app.location())
			if err != nil {
				return err
			}
			startClock, err := timewindow.ParseClock(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endClock, err := timewindow.ParseClock(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			resp, err := app.Schedule.Reflow(context.Background(), contract.ChangeRequest{
				UserID:   app.UserID,
				Day:      day,
				Title:    title,
				EventID:  eventID,
				NewStart: startClock,
				NewEnd:   endClock,
			})
			if resp != nil {
				fmt.Print(formatter.RenderChange(resp))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&eventID, "id", "", "Event id (pins the move to one event)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
