package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avnerell/dayweave/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an ICS calendar file as fixed events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Import.ImportFile(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("imported %d event(s)\n", summary.Created)
			for _, s := range summary.Skipped {
				uid := s.UID
				if uid == "" {
					uid = "<no uid>"
				}
				fmt.Println(formatter.Dim(fmt.Sprintf("skipped %s: %s", uid, s.Reason)))
			}
			for _, title := range summary.Failed {
				fmt.Println(formatter.StyleRed.Render("failed to store: " + title))
			}
			return nil
		},
	}
}
