package selector_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"stylec/selector"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		input string
		want  string // expected String(), empty means same as input
	}{
		{"div", ""},
		{"*", ""},
		{".item", ""},
		{"#main", ""},
		{"%placeholder", ""},
		{"[href]", ""},
		{"[lang|=en]", ""},
		{`[type="text"]`, ""},
		{"a.link#top:hover", ""},
		{"a > b", ""},
		{"a + b", ""},
		{"a ~ b", ""},
		{".a .b .c", ""},
		{"::before", ""},
		{":nth-child(2n+1)", ""},
		{":not(.a)", ""},
		{":is(.a, .b)", ""},
		{":-moz-any(.a)", ""},
		// whitespace normalization
		{"a    >    b", "a > b"},
		{"a\n  b", "a b"},
	}
	p := selector.NewParser(zap.NewNop())
	for _, c := range cases {
		sel, err := p.Parse(c.input)
		if err != nil {
			t.Errorf("unable to parse %q: %v", c.input, err)
			continue
		}
		want := c.want
		if want == "" {
			want = c.input
		}
		if got := sel.String(); got != want {
			t.Errorf("%q: expected %q, got %q", c.input, want, got)
		}
	}
}

func TestParseCompoundStructure(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	sel, err := p.Parse("a.link:hover")
	if err != nil {
		t.Fatal(err)
	}
	comps := sel.Components()
	if len(comps) != 1 {
		t.Fatalf("expected a single component, got %d", len(comps))
	}
	compound, ok := comps[0].(*selector.CompoundSelector)
	if !ok {
		t.Fatalf("expected a compound selector, got %T", comps[0])
	}
	if len(compound.Members) != 3 {
		t.Fatalf("expected 3 simple selectors, got %d", len(compound.Members))
	}
	if _, ok := compound.Members[0].(*selector.TypeSelector); !ok {
		t.Errorf("expected type selector first, got %T", compound.Members[0])
	}
	if _, ok := compound.Members[1].(*selector.ClassSelector); !ok {
		t.Errorf("expected class selector second, got %T", compound.Members[1])
	}
	if _, ok := compound.Members[2].(*selector.PseudoSelector); !ok {
		t.Errorf("expected pseudo selector third, got %T", compound.Members[2])
	}
}

func TestParseCombinatorStructure(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	sel, err := p.Parse(".a > .b ~ .c")
	if err != nil {
		t.Fatal(err)
	}
	comps := sel.Components()
	if len(comps) != 5 {
		t.Fatalf("expected 5 components, got %d", len(comps))
	}
	if c, ok := comps[1].(selector.Combinator); !ok || c != selector.Child {
		t.Errorf("expected child combinator, got %v", comps[1])
	}
	if c, ok := comps[3].(selector.Combinator); !ok || c != selector.FollowingSibling {
		t.Errorf("expected following sibling combinator, got %v", comps[3])
	}
}

func TestParseSelectorPseudoRecursion(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	sel, err := p.Parse(":not(.a > .b, #c)")
	if err != nil {
		t.Fatal(err)
	}
	compound := sel.Components()[0].(*selector.CompoundSelector)
	pseudo, ok := compound.Members[0].(*selector.PseudoSelector)
	if !ok {
		t.Fatalf("expected pseudo selector, got %T", compound.Members[0])
	}
	if pseudo.Selector == nil {
		t.Fatal("expected a parsed selector argument")
	}
	if len(pseudo.Selector.Members) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(pseudo.Selector.Members))
	}
	if got := pseudo.Selector.Members[0].String(); got != ".a > .b" {
		t.Errorf("expected %q, got %q", ".a > .b", got)
	}
}

func TestParseNonSelectorPseudoKeepsArgument(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	sel, err := p.Parse("li:nth-child(2n+1)")
	if err != nil {
		t.Fatal(err)
	}
	compound := sel.Components()[0].(*selector.CompoundSelector)
	pseudo := compound.Members[1].(*selector.PseudoSelector)
	if pseudo.Selector != nil {
		t.Error("expected nth-child argument to stay verbatim")
	}
	if pseudo.Argument != "2n+1" {
		t.Errorf("expected argument %q, got %q", "2n+1", pseudo.Argument)
	}
}

func TestParseAttributeOperators(t *testing.T) {
	cases := []struct {
		input string
		op    string
		value string
	}{
		{"[href]", "", ""},
		{"[lang=en]", "=", "en"},
		{"[class~=nav]", "~=", "nav"},
		{"[lang|=en]", "|=", "en"},
		{"[href^=http]", "^=", "http"},
		{"[src$=png]", "$=", "png"},
		{`[title*="x"]`, "*=", `"x"`},
	}
	p := selector.NewParser(zap.NewNop())
	for _, c := range cases {
		sel, err := p.Parse(c.input)
		if err != nil {
			t.Errorf("unable to parse %q: %v", c.input, err)
			continue
		}
		compound := sel.Components()[0].(*selector.CompoundSelector)
		attr, ok := compound.Members[0].(*selector.AttributeSelector)
		if !ok {
			t.Errorf("%q: expected attribute selector, got %T", c.input, compound.Members[0])
			continue
		}
		if attr.Op != c.op || attr.Value != c.value {
			t.Errorf("%q: expected op %q value %q, got op %q value %q", c.input, c.op, c.value, attr.Op, attr.Value)
		}
	}
}

func TestParseList(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	list, err := p.ParseList("h1, h2,h3")
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(list.Members))
	}
	if got := list.String(); got != "h1, h2, h3" {
		t.Errorf("expected %q, got %q", "h1, h2, h3", got)
	}
}

func TestParseListLineBreaks(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	list, err := p.ParseList(".a,\n.b")
	if err != nil {
		t.Fatal(err)
	}
	if !list.Members[1].LineBreak() {
		t.Error("expected second member to carry the line break hint")
	}
	if got := list.String(); got != ".a,\n.b" {
		t.Errorf("expected %q, got %q", ".a,\n.b", got)
	}
}

func TestParseRejectsList(t *testing.T) {
	p := selector.NewParser(zap.NewNop())
	if _, err := p.Parse(".a, .b"); !errors.Is(err, selector.ErrInvalidSelector) {
		t.Fatalf("expected ErrInvalidSelector for list input, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		",",
		".a,",
		".a,,.b",
		"[href",
		"[href=]",
		":",
		":not(.a",
		". a",
	}
	p := selector.NewParser(zap.NewNop())
	for _, input := range cases {
		if _, err := p.ParseList(input); !errors.Is(err, selector.ErrInvalidSelector) {
			t.Errorf("%q: expected ErrInvalidSelector, got %v", input, err)
		}
	}
}

func TestParserDefaultsToNopLogger(t *testing.T) {
	p := selector.NewParser(nil)
	if _, err := p.Parse(".a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
