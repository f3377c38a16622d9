package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/cost"
	"github.com/GuotongWu/CookNote/internal/filter"
	"github.com/GuotongWu/CookNote/internal/journal"
	"github.com/GuotongWu/CookNote/internal/models"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var c filter.Criteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes grouped by favorites and day",
		Long: `List recipes grouped by favorites and day.

Favorites are listed first and again under the day they were created.

Example:
  cooknote list --ingredient 西兰花
  cooknote list --member 1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				view := a.Journal.Browse(cmd.Context(), c)
				return newPrinter(rootOpts, cmd).print(view, func(w io.Writer) {
					if len(view.Recipes) == 0 {
						fmt.Fprintln(w, "No recipes match.")
						return
					}
					for _, g := range view.Groups {
						fmt.Fprintln(w, g.Title)
						for _, r := range g.Items {
							writeRecipeLine(w, r)
						}
					}
				})
			})
		},
	}

	cmd.Flags().StringVarP(&c.SearchText, "query", "q", "", "match recipe names containing this text")
	cmd.Flags().StringVar(&c.Ingredient, "ingredient", "", "only recipes using this exact ingredient")
	cmd.Flags().StringVar(&c.MemberID, "member", "", "only recipes liked by this member id")

	return cmd
}

func writeRecipeLine(w io.Writer, r models.Recipe) {
	star := " "
	if r.IsFavorite {
		star = "★"
	}
	price := "-"
	if r.Cost != nil {
		price = "¥" + cost.Format(*r.Cost)
	}
	fmt.Fprintf(w, "  %s %-36s %s  %s\n", star, r.ID, r.Name, price)
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name        string
	Images      []string
	Ingredients []string
	Steps       []string
	Cost        string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new recipe",
		Long: `Record a new recipe.

Ingredients are given as name[:category[:grams[:cost]]]. The stored cost is
the sum of ingredient costs unless --cost sets a manual figure.

Example:
  cooknote add --name 番茄炒蛋 --image cover.jpg \
    --ingredient 鸡蛋:肉禽类:150:3 --ingredient 西红柿:蔬菜类:200:2.5 \
    --step 打蛋 --step 炒`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addRecipe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "recipe name (required)")
	cmd.Flags().StringArrayVar(&opts.Images, "image", nil, "image URI, first is the cover (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Ingredients, "ingredient", nil, "ingredient as name[:category[:grams[:cost]]] (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Steps, "step", nil, "cooking step (repeatable)")
	cmd.Flags().StringVar(&opts.Cost, "cost", "", "manual total cost overriding the ingredient sum")

	return cmd
}

func addRecipe(opts *AddOptions, cmd *cobra.Command) error {
	r := models.Recipe{
		Name:      opts.Name,
		ImageURIs: opts.Images,
		Steps:     opts.Steps,
	}
	for _, arg := range opts.Ingredients {
		ing, err := parseIngredient(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --ingredient", err)
		}
		r.Ingredients = append(r.Ingredients, ing)
	}

	var saveOpts []journal.SaveOption
	if cmd.Flags().Changed("cost") {
		saveOpts = append(saveOpts, journal.WithCostOverride(opts.Cost))
	}

	return withApp(opts.RootOptions, func(a *app.App) error {
		saved, err := a.Journal.SaveRecipe(cmd.Context(), r, saveOpts...)
		if err != nil {
			return serviceError(err)
		}
		return newPrinter(opts.RootOptions, cmd).print(saved, func(w io.Writer) {
			fmt.Fprintf(w, "Added %s (%s), cost %s\n", saved.Name, saved.ID, cost.Format(*saved.Cost))
		})
	})
}

// parseIngredient parses name[:category[:grams[:cost]]].
func parseIngredient(arg string) (models.Ingredient, error) {
	parts := strings.Split(arg, ":")
	if len(parts) > 4 {
		return models.Ingredient{}, fmt.Errorf("%q has too many fields", arg)
	}
	ing := models.Ingredient{Name: strings.TrimSpace(parts[0]), Category: models.CategoryOther}
	if ing.Name == "" {
		return models.Ingredient{}, fmt.Errorf("%q has no name", arg)
	}
	if len(parts) > 1 && parts[1] != "" {
		ing.Category = models.ParseCategory(parts[1])
	}
	if len(parts) > 2 && parts[2] != "" {
		n, ok := models.ParseAmount(cost.SanitizeAmount(parts[2]))
		if !ok {
			return models.Ingredient{}, fmt.Errorf("%q has an invalid amount", arg)
		}
		ing.Amount = models.IntPtr(n)
	}
	if len(parts) > 3 && parts[3] != "" {
		v, ok := models.ParseCost(cost.SanitizeCost(parts[3]))
		if !ok {
			return models.Ingredient{}, fmt.Errorf("%q has an invalid cost", arg)
		}
		ing.Cost = models.FloatPtr(v)
	}
	return ing, nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <recipe-id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				if err := a.Journal.DeleteRecipe(cmd.Context(), args[0]); err != nil {
					return serviceError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

// NewFavoriteCommand creates the favorite command.
func NewFavoriteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <recipe-id>",
		Short: "Toggle a recipe's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				r, err := a.Journal.ToggleFavorite(cmd.Context(), args[0])
				if err != nil {
					return serviceError(err)
				}
				return newPrinter(rootOpts, cmd).print(r, func(w io.Writer) {
					if r.IsFavorite {
						fmt.Fprintf(w, "%s is now a favorite\n", r.Name)
					} else {
						fmt.Fprintf(w, "%s is no longer a favorite\n", r.Name)
					}
				})
			})
		},
	}
}

// NewLikeCommand creates the like command.
func NewLikeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "like <recipe-id> <member-id>",
		Short: "Toggle whether a household member likes a recipe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app.App) error {
				r, err := a.Journal.ToggleLike(cmd.Context(), args[0], args[1])
				if err != nil {
					return serviceError(err)
				}
				return newPrinter(rootOpts, cmd).print(r, func(w io.Writer) {
					fmt.Fprintf(w, "%s liked by %s\n", r.Name, strings.Join(r.LikedBy, ", "))
				})
			})
		},
	}
}

// CostOptions holds flags for the cost command.
type CostOptions struct {
	*RootOptions
	Override string
	Costs    []string
	Amounts  []string
}

// NewCostCommand creates the cost command.
func NewCostCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CostOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cost <recipe-id>",
		Short: "Edit ingredient costs or the manual total of a recipe",
		Long: `Edit ingredient costs or the manual total of a recipe.

Without flags the current reconciliation is shown and saved as is.
An empty --override clears the manual total.

Example:
  cooknote cost 3 --set custom-1=25.5
  cooknote cost 3 --override 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editCost(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Override, "override", "", "manual total cost (empty clears it)")
	cmd.Flags().StringArrayVar(&opts.Costs, "set", nil, "ingredient cost as id=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Amounts, "amount", nil, "ingredient grams as id=value (repeatable)")

	return cmd
}

func editCost(opts *CostOptions, id string, cmd *cobra.Command) error {
	overrideSet := cmd.Flags().Changed("override")

	return withApp(opts.RootOptions, func(a *app.App) error {
		var auto float64
		var display string
		r, err := a.Journal.EditCost(cmd.Context(), id, func(e *cost.Editor) error {
			for _, kv := range opts.Costs {
				ingID, val, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: want id=value", kv)
				}
				if err := e.SetCost(ingID, val); err != nil {
					return err
				}
			}
			for _, kv := range opts.Amounts {
				ingID, val, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--amount %q: want id=value", kv)
				}
				if err := e.SetAmount(ingID, val); err != nil {
					return err
				}
			}
			if overrideSet {
				e.SetOverride(opts.Override)
			}
			auto, display = e.AutoCost(), e.Display()
			return nil
		})
		if err != nil {
			return serviceError(err)
		}
		return newPrinter(opts.RootOptions, cmd).print(r, func(w io.Writer) {
			fmt.Fprintf(w, "%s: ingredients %s, total %s\n", r.Name, cost.Format(auto), display)
		})
	})
}
