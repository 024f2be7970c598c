package selector

// IsSuperselector reports whether a subsumes b: every element matched by b
// is guaranteed to also be matched by a. The relation is reflexive and
// transitive but partial — unrelated selectors are simply incomparable.
func IsSuperselector(a, b *ComplexSelector) bool {
	return complexIsSuperselector(a.components, b.components)
}

// selectorPseudos are the pseudo-classes whose argument is a selector list
// that the relation must recurse into.
var selectorPseudos = map[string]bool{
	"not": true, "is": true, "matches": true, "any": true, "where": true,
	"current": true, "has": true, "host": true, "host-context": true,
	"slotted": true, "nth-child": true, "nth-last-child": true,
}

// subselectorPseudos are the selector pseudos that, appearing on the target
// side, can stand in for one of their argument's simple selectors.
var subselectorPseudos = map[string]bool{
	"is": true, "matches": true, "any": true, "where": true,
}

// complexIsSuperselector walks both component sequences front to back,
// aligning each compound of c1 with the shortest prefix of c2 it subsumes
// and then reconciling the combinators that follow. Descendant context in
// c1 may skip any number of c2 compounds; explicit combinators must unify
// per their semantics (">" exactly, "~" also accepts "+").
func complexIsSuperselector(c1, c2 []ComplexComponent) bool {
	// A trailing combinator constrains nothing concrete on either side.
	if _, ok := c1[len(c1)-1].(Combinator); ok {
		return false
	}
	if _, ok := c2[len(c2)-1].(Combinator); ok {
		return false
	}

	i1, i2 := 0, 0
	for {
		remaining1 := len(c1) - i1
		remaining2 := len(c2) - i2
		if remaining1 == 0 || remaining2 == 0 {
			return false
		}
		// A more constrained sequence can never subsume a shorter one.
		if remaining1 > remaining2 {
			return false
		}

		compound1, ok := c1[i1].(*CompoundSelector)
		if !ok {
			// Leading or doubled combinator: incomparable, not an error.
			return false
		}
		if remaining1 == 1 {
			last, ok := c2[len(c2)-1].(*CompoundSelector)
			if !ok {
				return false
			}
			return compoundIsSuperselector(compound1, last, c2[i2:len(c2)-1])
		}

		// Find the shortest prefix of c2[i2:] whose final compound is
		// subsumed by compound1. Stop before consuming all of c2: the rest
		// of c1 still needs something to match.
		after := i2 + 1
		for ; after < len(c2); after++ {
			if compound2, ok := c2[after-1].(*CompoundSelector); ok {
				if compoundIsSuperselector(compound1, compound2, c2[i2:after-1]) {
					break
				}
			}
		}
		if after == len(c2) {
			return false
		}

		if comb1, ok := c1[i1+1].(Combinator); ok {
			comb2, ok := c2[after].(Combinator)
			if !ok {
				return false
			}
			if comb1 == FollowingSibling {
				// "a ~ b" subsumes "a + b" but not "a > b".
				if comb2 == Child {
					return false
				}
			} else if comb2 != comb1 {
				return false
			}
			// "a > c" does not subsume "a > b > c" or "a > b c": the
			// immediate relationship pins the alignment. Same for siblings.
			if remaining1 == 3 && remaining2 > 3 {
				return false
			}
			i1 += 2
			i2 = after + 1
		} else if comb2, ok := c2[after].(Combinator); ok {
			// Descendant context in c1 accepts a child combinator in c2.
			if comb2 != Child {
				return false
			}
			i1++
			i2 = after + 1
		} else {
			i1++
			i2 = after
		}
	}
}

// compoundIsSuperselector reports whether every simple selector of c1 is
// present in, or implied by, c2. parents is the component context preceding
// c2 in its complex selector; selector pseudos may match against it.
func compoundIsSuperselector(c1, c2 *CompoundSelector, parents []ComplexComponent) bool {
	for _, simple := range c1.Members {
		if pseudo, ok := simple.(*PseudoSelector); ok && pseudo.Selector != nil {
			if !selectorPseudoIsSuperselector(pseudo, c2, parents) {
				return false
			}
		} else if !simpleIsSuperselectorOfCompound(simple, c2) {
			return false
		}
	}
	// c2 may carry pseudo-elements c1 does not share; those narrow what c2
	// matches below anything c1 can promise.
	for _, simple := range c2.Members {
		if pseudo, ok := simple.(*PseudoSelector); ok && pseudo.Element {
			if !simpleIsSuperselectorOfCompound(pseudo, c1) {
				return false
			}
		}
	}
	return true
}

// simpleIsSuperselectorOfCompound reports whether simple is present in
// compound, either literally or through a matcher pseudo (":is(.a)" stands
// in for ".a" when every alternative carries it).
func simpleIsSuperselectorOfCompound(simple SimpleSelector, compound *CompoundSelector) bool {
	// The universal selector matches every element a compound can match.
	if t, ok := simple.(*TypeSelector); ok && t.Name == "*" {
		return true
	}
	for _, theirs := range compound.Members {
		if simple.EqualSimple(theirs) {
			return true
		}
		pseudo, ok := theirs.(*PseudoSelector)
		if !ok || pseudo.Selector == nil || !subselectorPseudos[normalizedPseudoName(pseudo.Name)] {
			continue
		}
		if allAlternativesContain(*pseudo.Selector, simple) {
			return true
		}
	}
	return false
}

// allAlternativesContain reports whether every member of list is a single
// compound carrying simple.
func allAlternativesContain(list SelectorList, simple SimpleSelector) bool {
	for _, complex := range list.Members {
		if len(complex.components) != 1 {
			return false
		}
		compound, ok := complex.components[0].(*CompoundSelector)
		if !ok {
			return false
		}
		found := false
		for _, inner := range compound.Members {
			if inner.EqualSimple(simple) {
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

// selectorPseudoIsSuperselector decides whether a selector-argument pseudo
// on the subsuming side is satisfied by compound2 in its parent context.
func selectorPseudoIsSuperselector(pseudo1 *PseudoSelector, compound2 *CompoundSelector, parents []ComplexComponent) bool {
	list1 := *pseudo1.Selector
	switch normalizedPseudoName(pseudo1.Name) {
	case "is", "matches", "any", "where":
		// Satisfied by a matching pseudo on the target, or by the target
		// itself (with its ancestors) matching one of the alternatives.
		for _, list2 := range selectorPseudoArgs(compound2, pseudo1.Name) {
			if list1.IsSuperselector(list2) {
				return true
			}
		}
		for _, complex1 := range list1.Members {
			target := make([]ComplexComponent, 0, len(parents)+1)
			target = append(target, parents...)
			target = append(target, compound2)
			if complexIsSuperselector(complex1.components, target) {
				return true
			}
		}
		return false

	case "has", "host", "host-context", "slotted":
		for _, list2 := range selectorPseudoArgs(compound2, pseudo1.Name) {
			if list1.IsSuperselector(list2) {
				return true
			}
		}
		return false

	case "not":
		// Every negated alternative must be provably excluded by compound2.
		for _, complex1 := range list1.Members {
			if !notAlternativeExcluded(complex1, pseudo1.Name, compound2) {
				return false
			}
		}
		return true

	case "current":
		for _, list2 := range selectorPseudoArgs(compound2, pseudo1.Name) {
			if list1.Equal(list2) {
				return true
			}
		}
		return false

	case "nth-child", "nth-last-child":
		for _, theirs := range compound2.Members {
			pseudo2, ok := theirs.(*PseudoSelector)
			if !ok || pseudo2.Name != pseudo1.Name || pseudo2.Argument != pseudo1.Argument || pseudo2.Selector == nil {
				continue
			}
			if list1.IsSuperselector(*pseudo2.Selector) {
				return true
			}
		}
		return false

	default:
		// Unknown selector pseudo: only an identical pseudo satisfies it.
		for _, theirs := range compound2.Members {
			if pseudo1.EqualSimple(theirs) {
				return true
			}
		}
		return false
	}
}

// notAlternativeExcluded reports whether compound2 can never match the
// negated alternative: it names a different type or id, or negates a
// superset itself.
func notAlternativeExcluded(complex1 *ComplexSelector, pseudoName string, compound2 *CompoundSelector) bool {
	last, ok := complex1.components[len(complex1.components)-1].(*CompoundSelector)
	for _, theirs := range compound2.Members {
		switch simple2 := theirs.(type) {
		case *TypeSelector:
			if !ok {
				continue
			}
			for _, simple1 := range last.Members {
				if t1, isType := simple1.(*TypeSelector); isType && t1.Name != simple2.Name {
					return true
				}
			}
		case *IDSelector:
			if !ok {
				continue
			}
			for _, simple1 := range last.Members {
				if t1, isID := simple1.(*IDSelector); isID && t1.Name != simple2.Name {
					return true
				}
			}
		case *PseudoSelector:
			if simple2.Name != pseudoName || simple2.Selector == nil {
				continue
			}
			single := SelectorList{Members: []*ComplexSelector{complex1}}
			if simple2.Selector.IsSuperselector(single) {
				return true
			}
		}
	}
	return false
}

// selectorPseudoArgs collects the selector-list arguments of every
// pseudo-class on compound named name.
func selectorPseudoArgs(compound *CompoundSelector, name string) []SelectorList {
	var out []SelectorList
	for _, s := range compound.Members {
		if pseudo, ok := s.(*PseudoSelector); ok && !pseudo.Element && pseudo.Selector != nil && pseudo.Name == name {
			out = append(out, *pseudo.Selector)
		}
	}
	return out
}
