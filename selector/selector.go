// Package selector implements the selector algebra used during style-sheet
// compilation: an immutable model of compound and complex CSS selectors,
// specificity ranges over that model, and the superselector relation the
// extend mechanism queries.
package selector

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidSelector is returned when a selector cannot be constructed or
// parsed. It always indicates malformed input, never a recoverable state.
var ErrInvalidSelector = errors.New("invalid selector")

// Combinator is a structural relationship operator between two compound
// selectors. The descendant relationship has no combinator: it is expressed
// by two adjacent compounds in a complex selector's component sequence.
type Combinator int

const (
	// NextSibling matches an element immediately following its reference ("+").
	NextSibling Combinator = iota
	// Child matches a direct child of its reference (">").
	Child
	// FollowingSibling matches any later sibling of its reference ("~").
	FollowingSibling
)

func (c Combinator) String() string {
	switch c {
	case NextSibling:
		return "+"
	case Child:
		return ">"
	case FollowingSibling:
		return "~"
	default:
		return "<invalid combinator>"
	}
}

// ComplexComponent is one element of a complex selector's component
// sequence: either a *CompoundSelector or a Combinator. The set is closed;
// consumers dispatch with an exhaustive type switch.
type ComplexComponent interface {
	String() string
	equalComponent(ComplexComponent) bool
}

func (c Combinator) equalComponent(o ComplexComponent) bool {
	oc, ok := o.(Combinator)
	return ok && oc == c
}

// CompoundSelector is a non-empty ordered sequence of simple selectors with
// no combinators between them, matching a single element (".a.b:hover").
// It is immutable after construction.
type CompoundSelector struct {
	// Members holds the simple selectors in source order. Callers must not
	// modify it after construction.
	Members []SimpleSelector
}

// NewCompound builds a compound selector from its simple selectors.
func NewCompound(members ...SimpleSelector) (*CompoundSelector, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: compound selector has no members", ErrInvalidSelector)
	}
	return &CompoundSelector{Members: members}, nil
}

func (c *CompoundSelector) String() string {
	var b strings.Builder
	for _, m := range c.Members {
		b.WriteString(m.String())
	}
	return b.String()
}

// Equal reports structural equality: same members in the same order.
func (c *CompoundSelector) Equal(o *CompoundSelector) bool {
	if len(c.Members) != len(o.Members) {
		return false
	}
	for i, m := range c.Members {
		if !m.EqualSimple(o.Members[i]) {
			return false
		}
	}
	return true
}

func (c *CompoundSelector) equalComponent(o ComplexComponent) bool {
	oc, ok := o.(*CompoundSelector)
	return ok && c.Equal(oc)
}

// IsInvisible reports whether this compound can never render: it contains a
// placeholder selector, or a selector-argument pseudo whose whole argument
// list is invisible.
func (c *CompoundSelector) IsInvisible() bool {
	for _, m := range c.Members {
		switch s := m.(type) {
		case *PlaceholderSelector:
			return true
		case *PseudoSelector:
			if s.Selector != nil && s.Selector.IsInvisible() {
				return true
			}
		}
	}
	return false
}

// ComplexSelector is a non-empty ordered sequence of compound selectors and
// combinators (".a > .b ~ .c"). Two adjacent compounds denote the implicit
// descendant relationship. Adjacent combinators are tolerated for
// compatibility with selector hacks even though they are not valid output.
//
// The value is immutable after construction; derived attributes are computed
// lazily and cached, which is safe because the inputs can never change.
type ComplexSelector struct {
	components []ComplexComponent
	lineBreak  bool

	specOnce sync.Once
	minSpec  int
	maxSpec  int
}

// NewComplex builds a complex selector from its components. lineBreak is a
// formatting hint: when true, a serialized selector list puts this selector
// on its own line. An empty component sequence is a contract violation and
// fails with ErrInvalidSelector.
func NewComplex(components []ComplexComponent, lineBreak bool) (*ComplexSelector, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: complex selector has no components", ErrInvalidSelector)
	}
	cs := make([]ComplexComponent, len(components))
	copy(cs, components)
	return &ComplexSelector{components: cs, lineBreak: lineBreak}, nil
}

// Components returns the component sequence. The returned slice is shared
// with the selector and must not be modified.
func (s *ComplexSelector) Components() []ComplexComponent {
	return s.components
}

// LineBreak reports whether a serialized list should break the line before
// this selector.
func (s *ComplexSelector) LineBreak() bool {
	return s.lineBreak
}

func (s *ComplexSelector) String() string {
	parts := make([]string, len(s.components))
	for i, c := range s.components {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Equal reports structural equality of the component sequences. The
// lineBreak hint is formatting state and does not participate.
func (s *ComplexSelector) Equal(o *ComplexSelector) bool {
	if len(s.components) != len(o.components) {
		return false
	}
	for i, c := range s.components {
		if !c.equalComponent(o.components[i]) {
			return false
		}
	}
	return true
}

// IsInvisible reports whether any compound component is invisible.
func (s *ComplexSelector) IsInvisible() bool {
	for _, c := range s.components {
		if compound, ok := c.(*CompoundSelector); ok && compound.IsInvisible() {
			return true
		}
	}
	return false
}

// SelectorList is an ordered comma-separated list of complex selectors, as
// found at the top of a style rule or inside a selector pseudo argument.
type SelectorList struct {
	// Members holds the complex selectors in source order. Callers must not
	// modify it after construction.
	Members []*ComplexSelector
}

// NewList builds a selector list. An empty list is a contract violation.
func NewList(members ...*ComplexSelector) (SelectorList, error) {
	if len(members) == 0 {
		return SelectorList{}, fmt.Errorf("%w: selector list has no members", ErrInvalidSelector)
	}
	ms := make([]*ComplexSelector, len(members))
	copy(ms, members)
	return SelectorList{Members: ms}, nil
}

func (l SelectorList) String() string {
	var b strings.Builder
	for i, m := range l.Members {
		if i > 0 {
			if m.lineBreak {
				b.WriteString(",\n")
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(m.String())
	}
	return b.String()
}

// Equal reports element-wise structural equality.
func (l SelectorList) Equal(o SelectorList) bool {
	if len(l.Members) != len(o.Members) {
		return false
	}
	for i, m := range l.Members {
		if !m.Equal(o.Members[i]) {
			return false
		}
	}
	return true
}

// IsInvisible reports whether every member is invisible, i.e. the whole list
// can never render.
func (l SelectorList) IsInvisible() bool {
	for _, m := range l.Members {
		if !m.IsInvisible() {
			return false
		}
	}
	return len(l.Members) > 0
}

// IsSuperselector reports whether this list subsumes other: every member of
// other must be subsumed by some member of this list.
func (l SelectorList) IsSuperselector(other SelectorList) bool {
	for _, complex2 := range other.Members {
		found := false
		for _, complex1 := range l.Members {
			if complexIsSuperselector(complex1.components, complex2.components) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
