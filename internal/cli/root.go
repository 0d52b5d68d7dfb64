// Package cli wires the cobra command surface over the application services.
package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avnerell/dayweave/internal/service"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// App holds the service interfaces the CLI commands run against.
type App struct {
	Schedule service.ScheduleService
	Events   service.EventService
	Profiles service.ProfileService
	History  service.HistoryService
	Import   service.ImportService

	// UserID is the acting user, resolved from flags/environment by main.
	UserID string

	// Location renders event times; defaults to local time.
	Location *time.Location
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

// NewRootCmd creates the top-level "dayweave" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dayweave",
		Short:         "Day planner that reconciles your calendar with AI-placed microtasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.UserID, "user", app.UserID, "Acting user id")
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	root.AddCommand(
		newProfileCmd(app),
		newEventCmd(app),
		newPlanCmd(app),
		newMoveCmd(app),
		newImportCmd(app),
		newHistoryCmd(app),
	)

	return root
}

// dayFlagValue resolves a --day flag: empty means today.
func dayFlagValue(s string, loc *time.Location) (timewindow.Day, error) {
	if s == "" {
		return timewindow.DayOf(time.Now(), loc), nil
	}
	return timewindow.ParseDay(s)
}
