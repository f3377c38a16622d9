package models

// FamilyMember is a household member whose preferences can be recorded on recipes.
type FamilyMember struct {
	// ID is derived from the creation timestamp in milliseconds.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Color is the member's accent, one of Palette.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// Avatar is an optional image URI; clients draw initials when it is empty.
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Palette is the fixed set of member accent colors.
var Palette = []string{
	"#FF6B6B", "#4DABF7", "#FCC419", "#51CF66",
	"#BE4BDB", "#FF922B", "#22B8CF", "#845EF7",
}

// ValidColor reports whether c is in Palette.
func ValidColor(c string) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}
