package selector

// SpecificityBase is the weight step between specificity tiers: a type
// selector weighs 1, a class/attribute/pseudo-class weighs SpecificityBase
// and an id weighs SpecificityBase squared. The encoding matches the CSS
// convention [A,B,C] collapsed into a single integer, assuming fewer than
// SpecificityBase selectors per tier.
const SpecificityBase = 1000

// Specificity returns the [min, max] specificity range of the compound:
// the sum of each member's range. The range is only wider than a point when
// a member is a pseudo selector with a selector-list argument.
func (c *CompoundSelector) Specificity() (int, int) {
	var min, max int
	for _, m := range c.Members {
		mmin, mmax := m.specificity()
		min += mmin
		max += mmax
	}
	return min, max
}

// MinSpecificity returns the least specificity this selector can match with.
// The range is computed once per selector and cached; the selector is
// immutable, so the cached value can never go stale.
func (s *ComplexSelector) MinSpecificity() int {
	s.computeSpecificity()
	return s.minSpec
}

// MaxSpecificity returns the greatest specificity this selector can match
// with.
func (s *ComplexSelector) MaxSpecificity() int {
	s.computeSpecificity()
	return s.maxSpec
}

func (s *ComplexSelector) computeSpecificity() {
	s.specOnce.Do(func() {
		for _, c := range s.components {
			if compound, ok := c.(*CompoundSelector); ok {
				cmin, cmax := compound.Specificity()
				s.minSpec += cmin
				s.maxSpec += cmax
			}
		}
	})
}
