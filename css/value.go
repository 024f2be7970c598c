package css

import "github.com/mazznoer/csscolorparser"

// Value is an evaluated CSS value. The set of implementations is closed:
// Bool, Color, Ident, List, Number and Str.
type Value interface {
	value()
	// IsBlank reports whether the value renders to nothing and should be
	// suppressed when it appears as a list element.
	IsBlank() bool
}

// Bool is a boolean value, rendered as its literal text.
type Bool bool

func (Bool) value()        {}
func (Bool) IsBlank() bool { return false }

// Color is a color value. Rendering uses the canonical hex form; named-color
// shortening is deliberately not performed.
type Color struct {
	C csscolorparser.Color
}

// ParseColor parses any CSS color notation into a Color value.
func ParseColor(text string) (Color, error) {
	c, err := csscolorparser.Parse(text)
	if err != nil {
		return Color{}, err
	}
	return Color{C: c}, nil
}

func (Color) value()        {}
func (Color) IsBlank() bool { return false }

// Ident is an unquoted identifier-like value ("red", "solid 1px" fragments).
type Ident string

func (Ident) value()          {}
func (v Ident) IsBlank() bool { return v == "" }

// ListSeparator selects how list elements are joined.
type ListSeparator int

const (
	SeparatorSpace ListSeparator = iota
	SeparatorComma
)

// List is an ordered sequence of values. Blank elements are dropped at
// render time; a list with no renderable elements is invalid as a value.
type List struct {
	Separator ListSeparator
	Items     []Value
}

func (List) value() {}

func (l List) IsBlank() bool {
	for _, item := range l.Items {
		if !item.IsBlank() {
			return false
		}
	}
	return true
}

// Number is a numeric value rendered in plain decimal form.
type Number float64

func (Number) value()        {}
func (Number) IsBlank() bool { return false }

// Str is string content. Quoted selects whether rendering re-quotes the text
// or emits it literally.
type Str struct {
	Text   string
	Quoted bool
}

func (Str) value()          {}
func (s Str) IsBlank() bool { return !s.Quoted && s.Text == "" }
