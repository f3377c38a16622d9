package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/analyzer"
	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/models"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "analyze <image>...",
		Short: "Draft a recipe from 1-6 photos using the analysis service",
		Long: `Draft a recipe from 1-6 photos using the analysis service.

The service is called at ANALYZE_URL; without it a built-in sample draft is
returned. With --save the draft is recorded as a new recipe using the image
paths as its photos.`,
		Args: cobra.RangeArgs(analyzer.MinImages, analyzer.MaxImages),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := make([][]byte, len(args))
			uris := make([]string, len(args))
			for i, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read image", err)
				}
				raw[i] = data
				if uris[i], err = filepath.Abs(path); err != nil {
					uris[i] = path
				}
			}

			return withApp(rootOpts, func(a *app.App) error {
				draft, err := a.Analyzer.Analyze(cmd.Context(), analyzer.EncodeImages(raw))
				if err != nil {
					return serviceError(err)
				}
				if !save {
					return newPrinter(rootOpts, cmd).print(draft, func(w io.Writer) {
						writeDraft(w, draft)
					})
				}
				r, err := a.Journal.ImportDraft(cmd.Context(), draft, uris)
				if err != nil {
					return serviceError(err)
				}
				return newPrinter(rootOpts, cmd).print(r, func(w io.Writer) {
					writeDraft(w, draft)
					fmt.Fprintf(w, "Saved as %s\n", r.ID)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "record the draft as a new recipe")

	return cmd
}

func writeDraft(w io.Writer, d *models.Draft) {
	fmt.Fprintln(w, d.Name)
	for _, ing := range d.Ingredients {
		fmt.Fprintf(w, "  %s %gg (%s)\n", ing.Name, ing.Amount, ing.Category)
	}
	for i, step := range d.Steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
