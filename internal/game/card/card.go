package card

import (
	"fmt"
)

// Card is one physical card in a game. Cards are owned by exactly one zone
// at a time.
type Card struct {
	ID     int
	Def    *Definition
	Tapped bool
}

// New creates an untapped card without an id.
func New(def *Definition) *Card {
	return &Card{Def: def}
}

// Is reports whether the card has all of the given types.
func (c *Card) Is(t Types) bool {
	return c.Def.Is(t)
}

// Name returns the card's name.
func (c *Card) Name() string {
	return c.Def.Name
}

// Clone copies the card; the definition is shared.
func (c *Card) Clone() *Card {
	clone := *c
	return &clone
}

func (c *Card) String() string {
	s := fmt.Sprintf("%s - [%s] #%d", c.Def.Name, c.Def.Types, c.ID)
	if c.Tapped {
		s += " *TAPPED*"
	}
	if c.Def.Cost != nil {
		s += fmt.Sprintf(" - %s (%d)", c.Def.Cost, c.Def.ManaValue)
	}
	return s
}
