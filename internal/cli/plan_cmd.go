package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avnerell/dayweave/internal/cli/formatter"
	"github.com/avnerell/dayweave/internal/contract"
)

func newPlanCmd(app *App) *cobra.Command {
	var dayStr, wake, sleep string
	var useHistory bool

	cmd := &cobra.Command{
		Use:   "plan TASK...",
		Short: "Place microtasks into a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayFlagValue(dayStr, app.location())
			if err != nil {
				return err
			}
			resp, err := app.Schedule.Plan(context.Background(), contract.PlacementRequest{
				UserID:     app.UserID,
				Day:        day,
				TaskNames:  args,
				UseHistory: useHistory,
				WakeTime:   wake,
				SleepTime:  sleep,
			})
			if resp != nil {
				fmt.Print(formatter.RenderPlacement(resp))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&wake, "wake", "", "Override wake time (HH:MM)")
	cmd.Flags().StringVar(&sleep, "sleep", "", "Override sleep time (HH:MM)")
	cmd.Flags().BoolVar(&useHistory, "history", false, "Size slots using recorded task durations")
	return cmd
}
