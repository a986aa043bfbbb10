package zone

import (
	"sort"

	"github.com/magefree/decksim/internal/game/mana"
)

// Pips is a per-color histogram, indexed in mana.Colors order.
type Pips [5]float64

// CountPool adds the colored units of a pool. A unit that can be one of
// several colors is split evenly between them; colorless adds nothing.
func (p *Pips) CountPool(pool mana.Pool) {
	for i, c := range mana.Colors {
		p[i] += float64(pool.ColorCount(c))
	}
	for i := range mana.Colors {
		p[i] += float64(pool.Any) / float64(len(mana.Colors))
	}
	for _, h := range pool.Hybrid {
		share := 1 / float64(h.ColorCount())
		for i, c := range mana.Colors {
			if h.Contains(c) {
				p[i] += share
			}
		}
	}
}

// Total is the sum over all colors.
func (p Pips) Total() float64 {
	var total float64
	for _, v := range p {
		total += v
	}
	return total
}

// Normalize scales the histogram to sum to one. It reports false, leaving
// the histogram untouched, when there is nothing to scale.
func (p *Pips) Normalize() bool {
	total := p.Total()
	if total <= 0 {
		return false
	}
	for i := range p {
		p[i] /= total
	}
	return true
}

// PrioritizedDelta returns the colors where p exceeds other, largest excess
// first.
func (p Pips) PrioritizedDelta(other Pips) []mana.Color {
	type delta struct {
		color  mana.Color
		excess float64
	}
	var deltas []delta
	for i, c := range mana.Colors {
		if excess := p[i] - other[i]; excess > 0 {
			deltas = append(deltas, delta{c, excess})
		}
	}
	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].excess > deltas[j].excess
	})
	colors := make([]mana.Color, len(deltas))
	for i, d := range deltas {
		colors[i] = d.color
	}
	return colors
}
