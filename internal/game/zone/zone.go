// Package zone holds ordered collections of cards: library, hand, command
// zone, battlefield and graveyard.
package zone

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/magefree/decksim/internal/game/card"
)

// Zone is an ordered collection of cards. The end of the slice is the top
// of the zone.
type Zone struct {
	name  string
	cards []*card.Card
}

// New creates an empty zone.
func New(name string) *Zone {
	return &Zone{name: name}
}

// Name returns the zone name.
func (z *Zone) Name() string {
	return z.name
}

// Len returns the number of cards in the zone.
func (z *Zone) Len() int {
	return len(z.cards)
}

// Cards returns a snapshot of the cards in zone order. The cards themselves
// are shared.
func (z *Zone) Cards() []*card.Card {
	return append([]*card.Card(nil), z.cards...)
}

// Add puts a card on top of the zone.
func (z *Zone) Add(c *card.Card) {
	z.cards = append(z.cards, c)
}

// Find returns the card with the given id without removing it.
func (z *Zone) Find(id int) (*card.Card, bool) {
	for _, c := range z.cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Take removes the card with the given id, keeping the order of the rest.
func (z *Zone) Take(id int) (*card.Card, bool) {
	for i, c := range z.cards {
		if c.ID == id {
			z.cards = append(z.cards[:i], z.cards[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// Draw removes the top card.
func (z *Zone) Draw() (*card.Card, bool) {
	if len(z.cards) == 0 {
		return nil, false
	}
	c := z.cards[len(z.cards)-1]
	z.cards = z.cards[:len(z.cards)-1]
	return c, true
}

// Shuffle randomly permutes the zone.
func (z *Zone) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(z.cards), func(i, j int) {
		z.cards[i], z.cards[j] = z.cards[j], z.cards[i]
	})
}

// Query returns the cards having all of the given types.
func (z *Zone) Query(t card.Types) []*card.Card {
	var result []*card.Card
	for _, c := range z.cards {
		if c.Is(t) {
			result = append(result, c)
		}
	}
	return result
}

// TakeLand removes the first land whose type line contains typeName, ignoring
// case. Alternatives are separated by a slash, as in "forest/island".
func (z *Zone) TakeLand(typeName string) (*card.Card, bool) {
	alternatives := strings.Split(strings.ToLower(typeName), "/")
	for _, c := range z.cards {
		if !c.Is(card.TypeLand) {
			continue
		}
		typeLine := strings.ToLower(c.Def.TypeLine)
		for _, alt := range alternatives {
			alt = strings.TrimSpace(alt)
			if alt != "" && strings.Contains(typeLine, alt) {
				return z.Take(c.ID)
			}
		}
	}
	return nil, false
}

// UntapAll untaps every card in the zone.
func (z *Zone) UntapAll() {
	for _, c := range z.cards {
		c.Tapped = false
	}
}

// SortByManaValue orders the zone by ascending mana value, keeping the
// relative order of equal cards.
func (z *Zone) SortByManaValue() {
	sort.SliceStable(z.cards, func(i, j int) bool {
		return z.cards[i].Def.ManaValue < z.cards[j].Def.ManaValue
	})
}

// Clear removes every card.
func (z *Zone) Clear() {
	z.cards = nil
}

// Clone deep-copies the zone and its cards. Definitions are shared.
func (z *Zone) Clone() *Zone {
	clone := &Zone{name: z.name, cards: make([]*card.Card, len(z.cards))}
	for i, c := range z.cards {
		clone.cards[i] = c.Clone()
	}
	return clone
}

// AssignIDs numbers the cards in zone order starting at first and returns
// the next free id.
func (z *Zone) AssignIDs(first int) int {
	for _, c := range z.cards {
		c.ID = first
		first++
	}
	return first
}

// PipDemand sums the colored pips of the casting costs in the zone.
func (z *Zone) PipDemand() Pips {
	var pips Pips
	for _, c := range z.cards {
		if c.Def.Cost != nil {
			pips.CountPool(*c.Def.Cost)
		}
	}
	return pips
}

func (z *Zone) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d cards", z.name, len(z.cards))
	for _, c := range z.cards {
		b.WriteString("\n   ")
		b.WriteString(c.String())
	}
	return b.String()
}
