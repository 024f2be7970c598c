package selector_test

import (
	"testing"

	"go.uber.org/zap"

	"stylec/selector"
)

// isSuper parses both inputs as single complex selectors and checks the
// relation.
func isSuper(t *testing.T, a, b string) bool {
	t.Helper()
	p := selector.NewParser(zap.NewNop())
	sa, err := p.Parse(a)
	if err != nil {
		t.Fatalf("unable to parse %q: %v", a, err)
	}
	sb, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unable to parse %q: %v", b, err)
	}
	return selector.IsSuperselector(sa, sb)
}

func TestSuperselectorReflexive(t *testing.T) {
	for _, input := range []string{
		"a", ".a", "#a", ".a.b", "a > b", "a + b", "a ~ b", ".a .b .c",
	} {
		if !isSuper(t, input, input) {
			t.Errorf("expected %q to be a superselector of itself", input)
		}
	}
}

func TestSuperselectorCompound(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		// fewer constraints match more elements
		{".a", ".a.b", true},
		{".a.b", ".a", false},
		{"a", "a.b", true},
		{"a.b", "a.b.c", true},
		{".b", "a.b", true},
		{".a", ".b", false},
		// universal matches everything a type does
		{"*", "a", true},
		{"a", "*", false},
	}
	for _, c := range cases {
		if got := isSuper(t, c.a, c.b); got != c.want {
			t.Errorf("%q superselector of %q: expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestSuperselectorCombinators(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		// exact combinator matches
		{"a + b", "a + b", true},
		{"a > b", "a > b", true},
		// following sibling matches everything next sibling does
		{"a ~ b", "a + b", true},
		{"a + b", "a ~ b", false},
		// child and sibling relations never subsume each other
		{"a > b", "a ~ b", false},
		{"a ~ b", "a > b", false},
		// descendant subsumes child
		{".a .c", ".a > .c", true},
		{".a > .c", ".a .c", false},
	}
	for _, c := range cases {
		if got := isSuper(t, c.a, c.b); got != c.want {
			t.Errorf("%q superselector of %q: expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestSuperselectorDescendantSkipsAncestors(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		// a descendant relation may skip intermediate ancestors
		{".a .c", ".a .b .c", true},
		{".a .b .c", ".a .c", false},
		{".c", ".a .b .c", true},
		// child must stay a direct child
		{".foo > .baz", ".foo > .bar > .baz", false},
		{".foo .baz", ".foo > .bar > .baz", true},
	}
	for _, c := range cases {
		if got := isSuper(t, c.a, c.b); got != c.want {
			t.Errorf("%q superselector of %q: expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestSuperselectorLengthBounds(t *testing.T) {
	// a longer selector can never subsume a shorter one
	if isSuper(t, ".a .b .c", ".a .c") {
		t.Error("expected longer selector not to subsume shorter one")
	}
	if isSuper(t, ".a > .b", ".b") {
		t.Error("expected combined selector not to subsume bare compound")
	}
}

func TestSuperselectorPseudoElements(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		// pseudo-elements on the target must be mirrored on the source
		{".a", ".a::before", false},
		{".a::before", ".a::before", true},
		{".a::before", ".a", false},
	}
	for _, c := range cases {
		if got := isSuper(t, c.a, c.b); got != c.want {
			t.Errorf("%q superselector of %q: expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestSuperselectorMatchesPseudo(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		// :is subsumes any of its alternatives
		{":is(.a, .b)", ".a", true},
		{":is(.a, .b)", ".c", false},
		{":matches(.a, .b)", ".b.c", true},
		// target-side :is counts when every alternative carries the needed
		// simple selector
		{".a", ":is(.a.b, .a.c)", true},
		{".a", ":is(.a.b, .c)", false},
		// :not arguments must be subsumed the other way around
		{":not(.a)", ":not(.a.b)", false},
		{":not(.a.b)", ":not(.a)", true},
		{":not(.a)", ":not(.a)", true},
	}
	for _, c := range cases {
		if got := isSuper(t, c.a, c.b); got != c.want {
			t.Errorf("%q superselector of %q: expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestSuperselectorTransitiveSpotChecks(t *testing.T) {
	// a ⊇ b and b ⊇ c implies a ⊇ c for these triples
	triples := [][3]string{
		{".a", ".a.b", ".a.b.c"},
		{".x .z", ".x .y .z", ".x > .y > .z"},
	}
	for _, tr := range triples {
		if !isSuper(t, tr[0], tr[1]) || !isSuper(t, tr[1], tr[2]) {
			t.Fatalf("premises failed for %v", tr)
		}
		if !isSuper(t, tr[0], tr[2]) {
			t.Errorf("expected %q to subsume %q transitively", tr[0], tr[2])
		}
	}
}

func TestSuperselectorList(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	a, err := p.ParseList(".a, .b")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.ParseList(".a.x, .b.y")
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsSuperselector(b) {
		t.Error("expected every member of the second list to be subsumed")
	}
	if b.IsSuperselector(a) {
		t.Error("expected narrower list not to subsume wider one")
	}
}
