package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/app"
)

type statusReport struct {
	Database    string          `json:"database" yaml:"database"`
	Recipes     int             `json:"recipes" yaml:"recipes"`
	Members     int             `json:"members" yaml:"members"`
	Collections []app.KeyStatus `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the journal is stored and when it last changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				report := statusReport{
					Database: a.Config.DBPath,
					Recipes:  len(a.Journal.Recipes(cmd.Context())),
					Members:  len(a.Journal.Members(cmd.Context())),
				}
				cols, ok, err := a.Status(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read storage status", err)
				}
				if !ok {
					report.Database = "(in memory)"
				}
				report.Collections = cols

				return newPrinter(rootOpts, cmd).print(report, func(w io.Writer) {
					fmt.Fprintf(w, "Database: %s\n", report.Database)
					fmt.Fprintf(w, "Recipes:  %d\n", report.Recipes)
					fmt.Fprintf(w, "Members:  %d\n", report.Members)
					for _, c := range cols {
						fmt.Fprintf(w, "  %-20s written %s\n", c.Key, c.UpdatedAt.Format("2006-01-02 15:04:05"))
					}
				})
			})
		},
	}
}
