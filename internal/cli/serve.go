package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/auth"
)

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Issue a bearer token for the HTTP API.

Tokens are signed with API_SECRET; the subject labels the client using it.

Example:
  cooknote token kitchen-tablet --ttl 720h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.TokenTTL
			}
			jm, err := auth.NewJWTManager(cfg.APISecret, ttl)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot issue token", err)
			}
			token, err := jm.Generate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default TOKEN_TTL)")

	return cmd
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withApp(rootOpts, func(a *app.App) error {
				if addr != "" {
					a.Config.ListenAddr = addr
				}
				return a.Serve(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LISTEN_ADDR)")

	return cmd
}
