package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avnerell/dayweave/internal/cli/formatter"
	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/timewindow"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events directly",
	}
	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventEditCmd(app),
		newEventRemoveCmd(app),
	)
	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var dayStr, start, end, desc, location, category, recFreq string
	var recNum int
	var movable bool

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an event to a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.location()
			day, err := dayFlagValue(dayStr, loc)
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

			recType := domain.RecurrenceType(recFreq)
			e := &domain.Event{
				Title:           args[0],
				Description:     desc,
				Location:        location,
				Category:        category,
				StartTime:       day.At(startClock, loc),
				EndTime:         day.At(endClock, loc),
				Recurring:       recType != domain.RecurrenceNone,
				RecurrenceType:  recType,
				RecurrenceCount: recNum,
				Movable:         movable,
			}
			id, err := app.Events.Create(context.Background(), app.UserID, e)
			if err != nil {
				return err
			}
			fmt.Printf("created %s (%s)\n", e.Title, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&recFreq, "rec-freq", string(domain.RecurrenceNone), "Recurrence frequency (none|daily|weekly|monthly|bi-weekly)")
	cmd.Flags().IntVar(&recNum, "rec-num", 0, "Recurrence count")
	cmd.Flags().BoolVar(&movable, "movable", false, "Allow the engine to reposition this event")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var dayStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's events",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.location()
			day, err := dayFlagValue(dayStr, loc)
			if err != nil {
				return err
			}
			events, err := app.Events.ListDay(context.Background(), app.UserID, day)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderDay(day, events, loc))
			return nil
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func newEventEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit TITLE FIELD VALUE",
		Short: "Edit one field of an event (title, description, location, category)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Events.EditField(context.Background(), app.UserID, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("updated %d event(s)\n", n)
			return nil
		},
	}
	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	var dayStr string
	var reflow bool

	cmd := &cobra.Command{
		Use:   "remove TITLE",
		Short: "Remove events by title, optionally reflowing the rest of the day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !reflow {
				n, err := app.Events.Remove(ctx, app.UserID, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("removed %d event(s)\n", n)
				return nil
			}

			day, err := dayFlagValue(dayStr, app.location())
			if err != nil {
				return err
			}
			resp, err := app.Schedule.Reflow(ctx, contract.ChangeRequest{
				UserID: app.UserID,
				Day:    day,
				Title:  args[0],
				Delete: true,
			})
			if resp != nil {
				fmt.Print(formatter.RenderChange(resp))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "Day to reflow (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&reflow, "reflow", false, "Reposition the day's movable events after removal")
	return cmd
}
