package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/models"
)

// NewMembersCommand creates the members command and its subcommands.
func NewMembersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List and manage household members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				members := a.Journal.Members(cmd.Context())
				return newPrinter(rootOpts, cmd).print(members, func(w io.Writer) {
					for _, m := range members {
						fmt.Fprintf(w, "%-14s %s %s\n", m.ID, m.Color, m.Name)
					}
				})
			})
		},
	}

	cmd.AddCommand(newMemberAddCommand(rootOpts))
	cmd.AddCommand(newMemberUpdateCommand(rootOpts))
	cmd.AddCommand(newMemberDeleteCommand(rootOpts))

	return cmd
}

func newMemberAddCommand(rootOpts *RootOptions) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a household member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				m, err := a.Journal.AddMember(cmd.Context(), args[0], color)
				if err != nil {
					return serviceError(err)
				}
				return printMember(rootOpts, cmd, "Added", m)
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", fmt.Sprintf("accent color, one of %v", models.Palette))

	return cmd
}

func newMemberUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var name, color, avatar string

	cmd := &cobra.Command{
		Use:   "update <member-id>",
		Short: "Rename or recolor a household member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				current, err := findMember(a, cmd, args[0])
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("name") {
					current.Name = name
				}
				if cmd.Flags().Changed("color") {
					current.Color = color
				}
				if cmd.Flags().Changed("avatar") {
					current.Avatar = avatar
				}
				m, err := a.Journal.UpdateMember(cmd.Context(), current)
				if err != nil {
					return serviceError(err)
				}
				return printMember(rootOpts, cmd, "Updated", m)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&color, "color", "", "new accent color")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar image URI")

	return cmd
}

func newMemberDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <member-id>",
		Short: "Remove a household member",
		Long: `Remove a household member.

Whether recipes keep the member's likes depends on ORPHAN_POLICY
(tolerate keeps them, cascade removes them).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				if err := a.Journal.DeleteMember(cmd.Context(), args[0]); err != nil {
					return serviceError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted member %s\n", args[0])
				return nil
			})
		},
	}
}

func findMember(a *app.App, cmd *cobra.Command, id string) (models.FamilyMember, error) {
	for _, m := range a.Journal.Members(cmd.Context()) {
		if m.ID == id {
			return m, nil
		}
	}
	return models.FamilyMember{}, WrapExitError(ExitFailure, "not found", fmt.Errorf("member %s", id))
}

func printMember(rootOpts *RootOptions, cmd *cobra.Command, verb string, m models.FamilyMember) error {
	return newPrinter(rootOpts, cmd).print(m, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s (%s)\n", verb, m.Name, m.ID)
	})
}
