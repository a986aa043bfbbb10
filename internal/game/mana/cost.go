package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g. "{2}{G}", "{B/G}{B/G}", "{C}{C}").
// Supports:
// - Generic: {1}, {2}, ...; {X} counts as zero
// - Colored: {W}, {U}, {B}, {R}, {G}
// - Colorless and snow: {C}, {S}
// - Hybrid: {B/G}, {W/U/B/R/G} (the latter is the wildcard unit)
// - Phyrexian {B/P} and two-brid {2/B} are paid with their color
func ParseCost(costStr string) (Pool, error) {
	var pool Pool
	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return pool, fmt.Errorf("invalid mana cost %q", costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "X", "Y", "Z":
		case "C", "S":
			pool.Add(Colorless)
		default:
			if num, err := strconv.Atoi(symbol); err == nil {
				if num < 0 {
					return Pool{}, fmt.Errorf("invalid mana symbol {%s} in %q", symbol, costStr)
				}
				pool.Colorless += num
				continue
			}
			m, err := parseColoredSymbol(symbol)
			if err != nil {
				return Pool{}, fmt.Errorf("invalid mana cost %q: %w", costStr, err)
			}
			pool.Add(m)
		}
	}

	return pool, nil
}

// MustParseCost is like ParseCost but panics on malformed input. Intended for
// fixtures and static tables.
func MustParseCost(costStr string) Pool {
	pool, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return pool
}

// parseColoredSymbol parses "G", "B/G", "B/P" or "2/B" into a single unit.
func parseColoredSymbol(symbol string) (Mana, error) {
	var m Mana
	parts := strings.Split(symbol, "/")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if c, ok := ColorFromSymbol(part); ok {
			m.colors |= uint8(c)
			continue
		}
		if len(parts) > 1 && (part == "P" || part == "C") {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil && len(parts) > 1 {
			continue
		}
		return Mana{}, fmt.Errorf("unknown mana symbol {%s}", symbol)
	}
	if m.IsColorless() {
		return Mana{}, fmt.Errorf("unknown mana symbol {%s}", symbol)
	}
	return m, nil
}
