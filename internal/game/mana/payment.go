package mana

// counts is the flat counter form the solver works on once every hybrid unit
// has been resolved to a single color.
type counts struct {
	colorless int
	colors    [5]int
	any       int
}

func countsOf(p Pool) counts {
	c := counts{colorless: p.Colorless, any: p.Any}
	for i, color := range Colors {
		c.colors[i] = p.ColorCount(color)
	}
	return c
}

func (c counts) total() int {
	t := c.colorless + c.any
	for _, n := range c.colors {
		t += n
	}
	return t
}

// CanPayFor reports whether the units of the pool can be assigned to cover
// every unit of cost, using each pool unit at most once.
//
// Same-color units are matched first, the pool's wildcard units then cover
// whatever colored requirement is left, and colorless requirements take the
// rest. Hybrid units on either side are resolved by trying every choice of
// color for each of them.
func (p Pool) CanPayFor(cost Pool) bool {
	if cost.Value() > p.Value() {
		return false
	}

	need := countsOf(cost)
	need.colorless += need.any
	need.any = 0

	have := countsOf(p)
	if len(p.Hybrid) == 0 && len(cost.Hybrid) == 0 {
		return payDirect(have, need)
	}

	hybrids := make([]Mana, 0, len(p.Hybrid)+len(cost.Hybrid))
	hybrids = append(hybrids, p.Hybrid...)
	hybrids = append(hybrids, cost.Hybrid...)
	poolHybrids := len(p.Hybrid)

	choice := make([]Color, len(hybrids))
	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(hybrids) {
			h, n := have, need
			for j, c := range choice {
				if j < poolHybrids {
					h.colors[c.index()]++
				} else {
					n.colors[c.index()]++
				}
			}
			return payDirect(h, n)
		}
		for _, c := range hybrids[i].ColorList() {
			choice[i] = c
			if assign(i + 1) {
				return true
			}
		}
		return false
	}
	return assign(0)
}

// payDirect settles a payment with no hybrid units left on either side.
func payDirect(have, need counts) bool {
	deficit := 0
	for i := range have.colors {
		m := min(have.colors[i], need.colors[i])
		have.colors[i] -= m
		need.colors[i] -= m
		deficit += need.colors[i]
	}
	if deficit > have.any {
		return false
	}
	have.any -= deficit
	return have.total() >= need.colorless
}

// CanAlsoPayFor checks whether the pool covers extra on top of what has
// already been committed. It returns the new committed total when it does.
func (p Pool) CanAlsoPayFor(spent, extra Pool) (Pool, bool) {
	if spent.Value()+extra.Value() > p.Value() {
		return Pool{}, false
	}
	total := spent.Plus(extra)
	if !p.CanPayFor(total) {
		return Pool{}, false
	}
	return total, true
}
