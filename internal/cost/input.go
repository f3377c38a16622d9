package cost

import (
	"strconv"

	"github.com/GuotongWu/CookNote/internal/models"
)

// InputKind selects how a DecimalInput sanitizes keystrokes.
type InputKind int

const (
	// KindAmount accepts whole grams.
	KindAmount InputKind = iota
	// KindCost accepts a decimal amount of money.
	KindCost
)

// DecimalInput is the edit state of one numeric text field. Raw is exactly
// what the user sees; Value is the last successful parse. Raw is never
// rewritten from Value, so "3." stays "3." while Value is 3.
type DecimalInput struct {
	Kind  InputKind
	Raw   string
	Value *float64
	Valid bool
}

// NewAmountInput returns an input for gram amounts, pre-filled from v.
func NewAmountInput(v *int) DecimalInput {
	in := DecimalInput{Kind: KindAmount}
	if v != nil {
		in.Type(strconv.Itoa(*v))
	}
	return in
}

// NewCostInput returns an input for costs, pre-filled from v.
func NewCostInput(v *float64) DecimalInput {
	in := DecimalInput{Kind: KindCost}
	if v != nil {
		in.Type(strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return in
}

// Type replaces the field contents with the sanitized form of text and
// reparses it. An empty field is valid and has no value.
func (d *DecimalInput) Type(text string) {
	switch d.Kind {
	case KindAmount:
		d.Raw = SanitizeAmount(text)
	default:
		d.Raw = SanitizeCost(text)
	}

	d.Value = nil
	d.Valid = true
	if d.Raw == "" {
		return
	}

	var (
		v  float64
		ok bool
	)
	if d.Kind == KindAmount {
		var n int
		n, ok = models.ParseAmount(d.Raw)
		v = float64(n)
	} else {
		v, ok = models.ParseCost(d.Raw)
	}
	if !ok {
		d.Valid = false
		return
	}
	d.Value = &v
}

// Clear empties the field.
func (d *DecimalInput) Clear() {
	d.Type("")
}

// Int returns the value as whole grams, or nil when empty or invalid.
func (d DecimalInput) Int() *int {
	if d.Value == nil {
		return nil
	}
	n := int(*d.Value)
	return &n
}

// Float returns the value, or nil when empty or invalid.
func (d DecimalInput) Float() *float64 {
	if d.Value == nil {
		return nil
	}
	v := *d.Value
	return &v
}
