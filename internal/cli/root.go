// Package cli implements the cooknote command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/config"
	"github.com/GuotongWu/CookNote/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	DBPath  string
	Memory  bool
	EnvFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the cooknote CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cooknote",
		Short: "CookNote - family recipe journal",
		Long:  "Record dishes with photos, ingredients, cost and who in the household liked them.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if v := os.Getenv("LOG_LEVEL"); v != "" {
				level = logging.ParseLevel(v)
			}
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(logging.NewHandler(cmd.ErrOrStderr(), level, os.Getenv("LOG_FORMAT"))))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (default from DB_PATH)")
	cmd.PersistentFlags().BoolVar(&opts.Memory, "memory", false, "use a throwaway in-memory journal")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "load configuration from this env file")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewFavoriteCommand(opts))
	cmd.AddCommand(NewLikeCommand(opts))
	cmd.AddCommand(NewCostCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewMembersCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves configuration and applies flag overrides.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.EnvFile != "" {
		cfg, err = config.LoadFile(opts.EnvFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	return cfg, nil
}

// withApp opens the journal, runs fn and closes it again.
func withApp(opts *RootOptions, fn func(a *app.App) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	var appOpts []app.Option
	if opts.Memory {
		appOpts = append(appOpts, app.InMemory())
	}
	a, err := app.Open(cfg, appOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			slog.Error("Error closing journal", "error", closeErr)
		}
	}()
	return fn(a)
}
