package card

import (
	"github.com/magefree/decksim/internal/game/mana"
)

// Definition is the immutable, shared description of a card. Definitions are
// owned by a Catalog and referenced by every Card instance of that name.
type Definition struct {
	Name      string
	ManaValue int
	// Cost is nil for cards without a casting cost, like lands.
	Cost           *mana.Pool
	TypeLine       string
	Types          Types
	Produces       *mana.Mana
	EntersTapped   bool
	AdditionalCost AdditionalCost
	Abilities      []Ability
}

// Is reports whether the card has all of the given types.
func (d *Definition) Is(t Types) bool {
	return d.Types.Has(t)
}

// IsPermanent reports whether the card stays on the battlefield once played.
func (d *Definition) IsPermanent() bool {
	return d.Types&(TypeInstant|TypeSorcery) == 0
}

// CastingCost returns the casting cost, or an empty pool when there is none.
func (d *Definition) CastingCost() mana.Pool {
	if d.Cost == nil {
		return mana.Pool{}
	}
	return d.Cost.Clone()
}

// ProducedColorCount is the number of colors the card can produce; any
// color counts as five.
func (d *Definition) ProducedColorCount() int {
	if d.Produces == nil {
		return 0
	}
	return d.Produces.ColorCount()
}

// CalculateProducedMana returns the union of the colors produced by the
// card's mana abilities, or nil if it has none.
func (d *Definition) CalculateProducedMana() *mana.Mana {
	var produced *mana.Mana
	for _, a := range d.Abilities {
		pm, ok := a.Effect.(ProduceMana)
		if !ok {
			continue
		}
		u := pm.Pool.Union()
		if produced != nil {
			u = u.Union(*produced)
		}
		produced = &u
	}
	return produced
}

// IsRamp reports whether casting the card accelerates mana: nonland mana
// producers, land fetchers and additional land drops.
func (d *Definition) IsRamp() bool {
	for _, a := range d.Abilities {
		switch a.Effect.(type) {
		case ProduceMana:
			if !d.Is(TypeLand) {
				return true
			}
		case FetchLand, LandLimitIncrease:
			return true
		}
	}
	return false
}

// IsDraw reports whether the card has a draw effect.
func (d *Definition) IsDraw() bool {
	return d.HasEffect(func(e Effect) bool {
		_, ok := e.(Draw)
		return ok
	})
}

// HasEffect reports whether any ability's effect satisfies match.
func (d *Definition) HasEffect(match func(Effect) bool) bool {
	for _, a := range d.Abilities {
		if a.Effect != nil && match(a.Effect) {
			return true
		}
	}
	return false
}
