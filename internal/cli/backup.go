package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/journal"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all recipes and members as YAML",
		Long: `Write all recipes and members as YAML.

Example:
  cooknote export -o backup.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				b := a.Journal.Export(cmd.Context())
				data, err := yaml.Marshal(b)
				if err != nil {
					return fmt.Errorf("failed to encode backup: %w", err)
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return WrapExitError(ExitCommandError, "failed to write backup", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d recipes and %d members to %s\n", len(b.Recipes), len(b.Members), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the journal with a YAML backup",
		Long: `Replace the journal with a YAML backup written by export.

The whole backup is validated first; nothing changes if any recipe or
member is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBackup(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return withApp(rootOpts, func(a *app.App) error {
				if err := a.Journal.Restore(cmd.Context(), b); err != nil {
					return serviceError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes and %d members\n", len(b.Recipes), len(b.Members))
				return nil
			})
		},
	}
}

func readBackup(path string, stdin io.Reader) (journal.Backup, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return journal.Backup{}, WrapExitError(ExitCommandError, "failed to read backup", err)
	}

	var b journal.Backup
	if err := yaml.Unmarshal(data, &b); err != nil {
		return journal.Backup{}, WrapExitError(ExitCommandError, "failed to parse backup", err)
	}
	return b, nil
}
