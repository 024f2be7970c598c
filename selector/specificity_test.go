package selector_test

import (
	"testing"

	"go.uber.org/zap"

	"stylec/selector"
)

const base = selector.SpecificityBase

func parseOne(t *testing.T, input string) *selector.ComplexSelector {
	t.Helper()
	sel, err := selector.NewParser(zap.NewNop()).Parse(input)
	if err != nil {
		t.Fatalf("unable to parse %q: %v", input, err)
	}
	return sel
}

func TestSpecificityWeights(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"div", 1},
		{"*", 0},
		{".item", base},
		{"#main", base * base},
		{"%slot", base},
		{"[href]", base},
		{`[type="text"]`, base},
		{":hover", base},
		{"::before", 1},
		{"div.item:hover", 1 + base + base},
		{"#main .item a", base*base + base + 1},
		{"ul > li + li", 3},
	}
	for _, c := range cases {
		sel := parseOne(t, c.input)
		min, max := sel.MinSpecificity(), sel.MaxSpecificity()
		if min != c.want || max != c.want {
			t.Errorf("%q: expected specificity %d, got %d..%d", c.input, c.want, min, max)
		}
	}
}

func TestSpecificityRangeOverPseudoAlternatives(t *testing.T) {
	// :not(.a, #b) contributes the weight of its cheapest alternative at the
	// low end and its priciest at the high end.
	sel := parseOne(t, "div:not(.a, #b)")
	if got := sel.MinSpecificity(); got != 1+base {
		t.Errorf("expected min specificity %d, got %d", 1+base, got)
	}
	if got := sel.MaxSpecificity(); got != 1+base*base {
		t.Errorf("expected max specificity %d, got %d", 1+base*base, got)
	}
}

func TestSpecificityMinNeverExceedsMax(t *testing.T) {
	for _, input := range []string{
		"div", ".a.b", "#x:is(.a, #b, span)", "a:where(.x) > b:not(#y, .z)",
	} {
		sel := parseOne(t, input)
		if sel.MinSpecificity() > sel.MaxSpecificity() {
			t.Errorf("%q: min specificity %d exceeds max %d", input, sel.MinSpecificity(), sel.MaxSpecificity())
		}
	}
}

func TestSpecificityStableAcrossCalls(t *testing.T) {
	sel := parseOne(t, "#main > .item:not(.a, #b)")
	min1, max1 := sel.MinSpecificity(), sel.MaxSpecificity()
	min2, max2 := sel.MinSpecificity(), sel.MaxSpecificity()
	if min1 != min2 || max1 != max2 {
		t.Errorf("specificity changed between calls: %d..%d then %d..%d", min1, max1, min2, max2)
	}
}

func TestCompoundSpecificity(t *testing.T) {
	c, err := selector.NewCompound(
		&selector.TypeSelector{Name: "a"},
		&selector.ClassSelector{Name: "link"},
		&selector.IDSelector{Name: "top"},
	)
	if err != nil {
		t.Fatal(err)
	}
	min, max := c.Specificity()
	want := 1 + base + base*base
	if min != want || max != want {
		t.Errorf("expected %d, got %d..%d", want, min, max)
	}
}
