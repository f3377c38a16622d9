package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/app"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [query]",
		Short: "Show known ingredients by category and how often they are used",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, "")
			return withApp(rootOpts, func(a *app.App) error {
				view := a.Journal.Catalog(cmd.Context(), query)
				return newPrinter(rootOpts, cmd).print(view, func(w io.Writer) {
					for _, sec := range view.Sections {
						fmt.Fprintln(w, sec.Category)
						for _, ing := range sec.Items {
							fmt.Fprintf(w, "  %s ×%d\n", ing.Name, view.Frequencies[ing.Name])
						}
					}
				})
			})
		},
	}
}
