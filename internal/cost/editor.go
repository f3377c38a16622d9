package cost

import (
	"fmt"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Line is the edit state of one ingredient's amount and cost.
type Line struct {
	Ingredient models.Ingredient
	Amount     DecimalInput
	Cost       DecimalInput
}

// Editor tracks cost-related edits to one recipe.
type Editor struct {
	lines    []Line
	override string
}

// Open starts an edit session for r. Legacy amounts are sanitized to whole
// grams and the manual override is pre-populated by Reconcile.
func Open(r models.Recipe) *Editor {
	e := &Editor{lines: make([]Line, len(r.Ingredients))}
	for i, ing := range r.Ingredients {
		e.lines[i] = Line{
			Ingredient: ing.Clone(),
			Amount:     NewAmountInput(ing.Amount),
			Cost:       NewCostInput(ing.Cost),
		}
	}
	e.override = Reconcile(r.Cost, e.Ingredients())
	return e
}

// Lines returns the current per-ingredient edit state.
func (e *Editor) Lines() []Line {
	return append([]Line(nil), e.lines...)
}

// Override returns the manual override text.
func (e *Editor) Override() string {
	return e.override
}

// SetOverride sets the manual override. An empty string clears it.
func (e *Editor) SetOverride(text string) {
	e.override = SanitizeCost(text)
}

// SetAmount types text into the amount field of the ingredient with id.
func (e *Editor) SetAmount(id, text string) error {
	l, err := e.line(id)
	if err != nil {
		return err
	}
	l.Amount.Type(text)
	return nil
}

// SetCost types text into the cost field of the ingredient with id.
func (e *Editor) SetCost(id, text string) error {
	l, err := e.line(id)
	if err != nil {
		return err
	}
	l.Cost.Type(text)
	return nil
}

// AddIngredient appends an ingredient to the session.
func (e *Editor) AddIngredient(ing models.Ingredient) {
	e.lines = append(e.lines, Line{
		Ingredient: ing.Clone(),
		Amount:     NewAmountInput(ing.Amount),
		Cost:       NewCostInput(ing.Cost),
	})
}

// RemoveIngredient drops the ingredient with id.
func (e *Editor) RemoveIngredient(id string) {
	out := e.lines[:0]
	for _, l := range e.lines {
		if l.Ingredient.ID != id {
			out = append(out, l)
		}
	}
	e.lines = out
}

// Ingredients returns the ingredients with the parsed field values applied.
func (e *Editor) Ingredients() []models.Ingredient {
	out := make([]models.Ingredient, len(e.lines))
	for i, l := range e.lines {
		ing := l.Ingredient.Clone()
		ing.Amount = l.Amount.Int()
		ing.Cost = l.Cost.Float()
		out[i] = ing
	}
	return out
}

// AutoCost is the current automatic cost.
func (e *Editor) AutoCost() float64 {
	return Auto(e.Ingredients())
}

// Display is the cost shown to the user.
func (e *Editor) Display() string {
	return Display(e.Ingredients(), e.override)
}

// Apply writes the edited ingredients and reconciled cost into r.
func (e *Editor) Apply(r *models.Recipe) {
	r.Ingredients = e.Ingredients()
	c := Saved(e.Display())
	r.Cost = &c
}

func (e *Editor) line(id string) (*Line, error) {
	for i := range e.lines {
		if e.lines[i].Ingredient.ID == id {
			return &e.lines[i], nil
		}
	}
	return nil, fmt.Errorf("ingredient not found: %s", id)
}
