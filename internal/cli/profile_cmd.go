package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avnerell/dayweave/internal/cli/formatter"
	"github.com/avnerell/dayweave/internal/domain"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}
	cmd.AddCommand(newProfileSetCmd(app), newProfileShowCmd(app))
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name, wake, sleep, tz string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.UserProfile{
				UserID:      app.UserID,
				DisplayName: name,
				WakeTime:    wake,
				SleepTime:   sleep,
				Timezone:    tz,
			}
			if err := app.Profiles.Set(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("profile %s saved\n", app.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&wake, "wake", domain.DefaultWakeTime, "Wake time (HH:MM)")
	cmd.Flags().StringVar(&sleep, "sleep", domain.DefaultSleepTime, "Sleep time (HH:MM)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone name")
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			wake, sleep := p.WindowBounds()
			fmt.Println(formatter.Header("Profile " + p.UserID))
			fmt.Printf("  Name:     %s\n", p.DisplayName)
			fmt.Printf("  Window:   %s to %s\n", wake, sleep)
			fmt.Printf("  Timezone: %s\n", p.Timezone)
			return nil
		},
	}
}
