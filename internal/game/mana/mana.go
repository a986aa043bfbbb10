package mana

import (
	"math/bits"
	"strings"
)

// Mana is a single unit of mana described by the set of colors that can
// pay for it. No colors is colorless, all five is the wildcard ("any color")
// unit, and anything in between with two or more colors is hybrid.
type Mana struct {
	colors uint8
}

var (
	Colorless = Mana{}
	Black     = Mana{colors: uint8(ColorBlack)}
	Blue      = Mana{colors: uint8(ColorBlue)}
	Green     = Mana{colors: uint8(ColorGreen)}
	Red       = Mana{colors: uint8(ColorRed)}
	White     = Mana{colors: uint8(ColorWhite)}
	Any       = Mana{colors: allColors}
)

// Mono creates a monocolored unit.
func Mono(c Color) Mana {
	return Mana{colors: uint8(c)}
}

// Hybrid creates a unit payable by any one of the given colors.
func Hybrid(colors ...Color) Mana {
	var m Mana
	for _, c := range colors {
		m.colors |= uint8(c)
	}
	return m
}

// IsColorless reports whether the unit has no color.
func (m Mana) IsColorless() bool {
	return m.colors == 0
}

// IsMonocolor reports whether the unit has exactly one color.
func (m Mana) IsMonocolor() bool {
	return bits.OnesCount8(m.colors) == 1
}

// IsWildcard reports whether the unit carries all five colors.
func (m Mana) IsWildcard() bool {
	return m.colors == allColors
}

// IsHybrid reports whether the unit is an irregular multi-color unit, i.e.
// neither colorless, monocolored nor the wildcard.
func (m Mana) IsHybrid() bool {
	n := bits.OnesCount8(m.colors)
	return n >= 2 && n < len(Colors)
}

// ColorCount returns the number of colors in the unit.
func (m Mana) ColorCount() int {
	return bits.OnesCount8(m.colors)
}

// Contains reports whether the unit carries the color.
func (m Mana) Contains(c Color) bool {
	return m.colors&uint8(c) != 0
}

// ColorList returns the unit's colors in counter order.
func (m Mana) ColorList() []Color {
	var out []Color
	for _, c := range Colors {
		if m.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// CanPayFor reports whether this unit can cover the requirement of other:
// anything covers colorless, otherwise the two must share a color.
func (m Mana) CanPayFor(other Mana) bool {
	return other.IsColorless() || m.colors&other.colors != 0
}

// CanPayForExactly reports a perfect colorless-for-colorless or
// same-single-color match.
func (m Mana) CanPayForExactly(other Mana) bool {
	return m.colors == other.colors && (m.IsColorless() || m.IsMonocolor())
}

// Union returns the unit carrying the colors of both units.
func (m Mana) Union(other Mana) Mana {
	return Mana{colors: m.colors | other.colors}
}

// String renders the unit as a mana symbol: {1}, {B}, {B/R}.
func (m Mana) String() string {
	if m.IsColorless() {
		return "{1}"
	}
	symbols := make([]string, 0, len(Colors))
	for _, c := range m.ColorList() {
		symbols = append(symbols, c.Symbol())
	}
	return "{" + strings.Join(symbols, "/") + "}"
}
