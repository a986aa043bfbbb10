package card

import (
	"strings"
)

// Types is a bitset of card types.
type Types uint8

const (
	TypeLand Types = 1 << iota
	TypeCreature
	TypePlaneswalker
	TypeArtifact
	TypeEnchantment
	TypeSorcery
	TypeInstant
)

var typeNames = []struct {
	t    Types
	name string
}{
	{TypeLand, "Land"},
	{TypeCreature, "Creature"},
	{TypePlaneswalker, "Planeswalker"},
	{TypeArtifact, "Artifact"},
	{TypeEnchantment, "Enchantment"},
	{TypeSorcery, "Sorcery"},
	{TypeInstant, "Instant"},
}

// ParseTypes extracts the type flags from a type line such as
// "Legendary Enchantment Creature — God".
func ParseTypes(typeLine string) Types {
	lower := strings.ToLower(typeLine)
	var t Types
	for _, entry := range typeNames {
		if strings.Contains(lower, strings.ToLower(entry.name)) {
			t |= entry.t
		}
	}
	return t
}

// Has reports whether every flag of other is set.
func (t Types) Has(other Types) bool {
	return other != 0 && t&other == other
}

func (t Types) String() string {
	var names []string
	for _, entry := range typeNames {
		if t&entry.t != 0 {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}
