package selector

import "strings"

// SimpleSelector is a single constraint inside a compound selector. The set
// of implementations is closed: TypeSelector, ClassSelector, IDSelector,
// PlaceholderSelector, AttributeSelector and PseudoSelector.
type SimpleSelector interface {
	String() string
	// EqualSimple reports structural equality with another simple selector.
	EqualSimple(SimpleSelector) bool
	// specificity returns the [min, max] specificity contribution.
	specificity() (int, int)
}

// TypeSelector matches elements by tag name. Name "*" is the universal
// selector and contributes no specificity.
type TypeSelector struct {
	Name string
}

func (s *TypeSelector) String() string { return s.Name }

func (s *TypeSelector) EqualSimple(o SimpleSelector) bool {
	t, ok := o.(*TypeSelector)
	return ok && t.Name == s.Name
}

func (s *TypeSelector) specificity() (int, int) {
	if s.Name == "*" {
		return 0, 0
	}
	return 1, 1
}

// ClassSelector matches elements carrying a class (".name").
type ClassSelector struct {
	Name string
}

func (s *ClassSelector) String() string { return "." + s.Name }

func (s *ClassSelector) EqualSimple(o SimpleSelector) bool {
	t, ok := o.(*ClassSelector)
	return ok && t.Name == s.Name
}

func (s *ClassSelector) specificity() (int, int) {
	return SpecificityBase, SpecificityBase
}

// IDSelector matches the element with the given id ("#name").
type IDSelector struct {
	Name string
}

func (s *IDSelector) String() string { return "#" + s.Name }

func (s *IDSelector) EqualSimple(o SimpleSelector) bool {
	t, ok := o.(*IDSelector)
	return ok && t.Name == s.Name
}

func (s *IDSelector) specificity() (int, int) {
	return SpecificityBase * SpecificityBase, SpecificityBase * SpecificityBase
}

// PlaceholderSelector is the extend-only selector ("%name"). It weighs like
// a class but can never render.
type PlaceholderSelector struct {
	Name string
}

func (s *PlaceholderSelector) String() string { return "%" + s.Name }

func (s *PlaceholderSelector) EqualSimple(o SimpleSelector) bool {
	t, ok := o.(*PlaceholderSelector)
	return ok && t.Name == s.Name
}

func (s *PlaceholderSelector) specificity() (int, int) {
	return SpecificityBase, SpecificityBase
}

// AttributeSelector matches on an attribute ("[href]", `[type="text"]`).
// Value keeps the right-hand side exactly as written, quotes included.
type AttributeSelector struct {
	Name  string
	Op    string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value string
}

func (s *AttributeSelector) String() string {
	return "[" + s.Name + s.Op + s.Value + "]"
}

func (s *AttributeSelector) EqualSimple(o SimpleSelector) bool {
	t, ok := o.(*AttributeSelector)
	return ok && t.Name == s.Name && t.Op == s.Op && t.Value == s.Value
}

func (s *AttributeSelector) specificity() (int, int) {
	return SpecificityBase, SpecificityBase
}

// PseudoSelector is a pseudo-class (":hover") or pseudo-element ("::before"),
// optionally carrying an argument. Selector is non-nil for pseudos whose
// argument is itself a selector list (":not(.a, .b)"); Argument holds any
// other argument text verbatim ("2n+1").
type PseudoSelector struct {
	Name     string
	Element  bool
	Argument string
	Selector *SelectorList
}

func (s *PseudoSelector) String() string {
	var b strings.Builder
	b.WriteByte(':')
	if s.Element {
		b.WriteByte(':')
	}
	b.WriteString(s.Name)
	switch {
	case s.Selector != nil:
		b.WriteByte('(')
		b.WriteString(s.Selector.String())
		b.WriteByte(')')
	case s.Argument != "":
		b.WriteByte('(')
		b.WriteString(s.Argument)
		b.WriteByte(')')
	}
	return b.String()
}

func (s *PseudoSelector) EqualSimple(o SimpleSelector) bool {
	t, ok := o.(*PseudoSelector)
	if !ok || t.Name != s.Name || t.Element != s.Element || t.Argument != s.Argument {
		return false
	}
	if (s.Selector == nil) != (t.Selector == nil) {
		return false
	}
	return s.Selector == nil || s.Selector.Equal(*t.Selector)
}

// specificity: pseudo-elements weigh like type selectors, plain pseudo-classes
// like classes. A selector-argument pseudo ranges over its alternatives: the
// minimum specificity among them up to the maximum.
func (s *PseudoSelector) specificity() (int, int) {
	if s.Element {
		return 1, 1
	}
	if s.Selector == nil {
		return SpecificityBase, SpecificityBase
	}
	min, max := 0, 0
	for i, complex := range s.Selector.Members {
		cmin := complex.MinSpecificity()
		cmax := complex.MaxSpecificity()
		if i == 0 || cmin < min {
			min = cmin
		}
		if cmax > max {
			max = cmax
		}
	}
	return min, max
}

// normalizedPseudoName lowercases a pseudo name and strips a vendor prefix
// ("-moz-any" matches as "any").
func normalizedPseudoName(name string) string {
	name = strings.ToLower(name)
	if strings.HasPrefix(name, "-") {
		if i := strings.Index(name[1:], "-"); i >= 0 {
			return name[i+2:]
		}
	}
	return name
}
