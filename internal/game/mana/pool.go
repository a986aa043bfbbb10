package mana

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficient is returned when more mana is removed from a pool than it holds.
var ErrInsufficient = errors.New("insufficient mana in pool")

// Pool is a multiset of mana units, used both for costs and for available
// mana. Regular units live in counters; only irregular hybrid units are kept
// in the Hybrid list.
type Pool struct {
	Colorless int
	Black     int
	Blue      int
	Green     int
	Red       int
	White     int
	Any       int // wildcard units, payable as any single color

	Hybrid []Mana
}

// NewPool creates a pool from a sequence of units.
func NewPool(units ...Mana) Pool {
	var p Pool
	for _, m := range units {
		p.Add(m)
	}
	return p
}

// Add adds a single unit to the pool.
func (p *Pool) Add(m Mana) {
	switch {
	case m.IsColorless():
		p.Colorless++
	case m.IsWildcard():
		p.Any++
	case m.IsMonocolor():
		*p.counter(Color(m.colors))++
	default:
		p.Hybrid = append(p.Hybrid, m)
	}
}

// AddPool adds every unit of other to the pool.
func (p *Pool) AddPool(other Pool) {
	p.Colorless += other.Colorless
	p.Black += other.Black
	p.Blue += other.Blue
	p.Green += other.Green
	p.Red += other.Red
	p.White += other.White
	p.Any += other.Any
	p.Hybrid = append(p.Hybrid, other.Hybrid...)
}

// Value returns the converted value of the pool (number of units).
func (p Pool) Value() int {
	return p.Colorless + p.Black + p.Blue + p.Green + p.Red + p.White + p.Any + len(p.Hybrid)
}

// IsEmpty reports whether the pool has no units.
func (p Pool) IsEmpty() bool {
	return p.Value() == 0
}

// ColorCount returns the counter of a single color.
func (p Pool) ColorCount(c Color) int {
	return *p.counter(c)
}

// Count returns how many units of exactly this kind the pool holds.
func (p Pool) Count(m Mana) int {
	switch {
	case m.IsColorless():
		return p.Colorless
	case m.IsWildcard():
		return p.Any
	case m.IsMonocolor():
		return p.ColorCount(Color(m.colors))
	}
	n := 0
	for _, h := range p.Hybrid {
		if h == m {
			n++
		}
	}
	return n
}

// Units expands the pool into its individual units.
func (p Pool) Units() []Mana {
	units := make([]Mana, 0, p.Value())
	for i := 0; i < p.Colorless; i++ {
		units = append(units, Colorless)
	}
	for _, c := range Colors {
		for i := 0; i < p.ColorCount(c); i++ {
			units = append(units, Mono(c))
		}
	}
	for i := 0; i < p.Any; i++ {
		units = append(units, Any)
	}
	return append(units, p.Hybrid...)
}

// Union returns a unit carrying every color any unit of the pool carries.
func (p Pool) Union() Mana {
	var m Mana
	for _, c := range Colors {
		if p.ColorCount(c) > 0 {
			m.colors |= uint8(c)
		}
	}
	if p.Any > 0 {
		m.colors = allColors
	}
	for _, h := range p.Hybrid {
		m = m.Union(h)
	}
	return m
}

// Clone returns a deep copy of the pool.
func (p Pool) Clone() Pool {
	c := p
	if p.Hybrid != nil {
		c.Hybrid = append([]Mana(nil), p.Hybrid...)
	}
	return c
}

// Plus returns a new pool holding the units of both pools.
func (p Pool) Plus(other Pool) Pool {
	sum := p.Clone()
	sum.AddPool(other)
	return sum
}

// RemoveExact removes exactly the units of other from the pool. Nothing is
// removed if the pool doesn't hold every unit.
func (p *Pool) RemoveExact(other Pool) error {
	next := p.Clone()
	next.Colorless -= other.Colorless
	next.Any -= other.Any
	for _, c := range Colors {
		*next.counter(c) -= other.ColorCount(c)
	}
	for _, h := range other.Hybrid {
		idx := -1
		for i, candidate := range next.Hybrid {
			if candidate == h {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("remove %s from %s: %w", other, p, ErrInsufficient)
		}
		next.Hybrid = append(next.Hybrid[:idx], next.Hybrid[idx+1:]...)
	}
	if next.Colorless < 0 || next.Any < 0 {
		return fmt.Errorf("remove %s from %s: %w", other, p, ErrInsufficient)
	}
	for _, c := range Colors {
		if next.ColorCount(c) < 0 {
			return fmt.Errorf("remove %s from %s: %w", other, p, ErrInsufficient)
		}
	}
	*p = next
	return nil
}

// String renders the pool like a casting cost: {3}{B}{G}. An empty pool is "n/a".
func (p Pool) String() string {
	if p.IsEmpty() {
		return "n/a"
	}
	var b strings.Builder
	if p.Colorless > 0 {
		fmt.Fprintf(&b, "{%d}", p.Colorless)
	}
	for _, c := range Colors {
		for i := 0; i < p.ColorCount(c); i++ {
			b.WriteString("{" + c.Symbol() + "}")
		}
	}
	for i := 0; i < p.Any; i++ {
		b.WriteString(Any.String())
	}
	for _, h := range p.Hybrid {
		b.WriteString(h.String())
	}
	return b.String()
}

func (p *Pool) counter(c Color) *int {
	switch c {
	case ColorBlack:
		return &p.Black
	case ColorBlue:
		return &p.Blue
	case ColorGreen:
		return &p.Green
	case ColorRed:
		return &p.Red
	case ColorWhite:
		return &p.White
	}
	panic(fmt.Sprintf("mana: %s is not a single color", c))
}
