// Package cardtest provides card definitions for tests.
package cardtest

import (
	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
)

func tapFor(units ...mana.Mana) card.Ability {
	return card.Ability{
		Trigger:      card.TriggerActivated,
		Cost:         card.TapCost{},
		Effect:       card.ProduceMana{Pool: mana.NewPool(units...)},
		Availability: 1,
	}
}

func cost(s string) *mana.Pool {
	p := mana.MustParseCost(s)
	return &p
}

func produces(m mana.Mana) *mana.Mana {
	return &m
}

func basic(name string, m mana.Mana) *card.Definition {
	return &card.Definition{
		Name:      name,
		TypeLine:  "Basic Land — " + name,
		Types:     card.TypeLand,
		Produces:  produces(m),
		Abilities: []card.Ability{tapFor(m)},
	}
}

func Plains() *card.Definition   { return basic("Plains", mana.White) }
func Island() *card.Definition   { return basic("Island", mana.Blue) }
func Swamp() *card.Definition    { return basic("Swamp", mana.Black) }
func Mountain() *card.Definition { return basic("Mountain", mana.Red) }
func Forest() *card.Definition   { return basic("Forest", mana.Green) }

func SolRing() *card.Definition {
	return &card.Definition{
		Name:      "Sol Ring",
		ManaValue: 1,
		Cost:      cost("{1}"),
		TypeLine:  "Artifact",
		Types:     card.TypeArtifact,
		Produces:  produces(mana.Colorless),
		Abilities: []card.Ability{tapFor(mana.Colorless, mana.Colorless)},
	}
}

func CommandersSphere() *card.Definition {
	return &card.Definition{
		Name:      "Commander's Sphere",
		ManaValue: 3,
		Cost:      cost("{3}"),
		TypeLine:  "Artifact",
		Types:     card.TypeArtifact,
		Produces:  produces(mana.Any),
		Abilities: []card.Ability{
			tapFor(mana.Any),
			{
				Trigger:      card.TriggerActivated,
				Cost:         card.SacrificeCost{},
				Effect:       card.Draw{Distribution: []int{1}},
				Availability: 1,
			},
		},
	}
}

func CommandTower() *card.Definition {
	return &card.Definition{
		Name:      "Command Tower",
		TypeLine:  "Land",
		Types:     card.TypeLand,
		Produces:  produces(mana.Any),
		Abilities: []card.Ability{tapFor(mana.Any)},
	}
}

func JungleHollow() *card.Definition {
	golgari := mana.Hybrid(mana.ColorBlack, mana.ColorGreen)
	return &card.Definition{
		Name:         "Jungle Hollow",
		TypeLine:     "Land",
		Types:        card.TypeLand,
		Produces:     produces(golgari),
		EntersTapped: true,
		Abilities:    []card.Ability{tapFor(golgari)},
	}
}

// Elk is a vanilla three mana creature.
func Elk() *card.Definition {
	return &card.Definition{
		Name:      "Just an Elk",
		ManaValue: 3,
		Cost:      cost("{2}{G}"),
		TypeLine:  "Creature — Elk",
		Types:     card.TypeCreature,
	}
}

// Dragon is an expensive creature, used as a commander.
func Dragon() *card.Definition {
	return &card.Definition{
		Name:      "Big Dragon",
		ManaValue: 6,
		Cost:      cost("{4}{R}{R}"),
		TypeLine:  "Legendary Creature — Dragon",
		Types:     card.TypeCreature,
	}
}

func EvolvingWilds() *card.Definition {
	return &card.Definition{
		Name:     "Evolving Wilds",
		TypeLine: "Land",
		Types:    card.TypeLand,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerActivated,
			Cost:         card.TapSacrificeCost{},
			Effect:       card.FetchLand{ToBattlefield: []string{"basic land"}},
			Availability: 1,
		}},
	}
}

func Cultivate() *card.Definition {
	return &card.Definition{
		Name:      "Cultivate",
		ManaValue: 3,
		Cost:      cost("{2}{G}"),
		TypeLine:  "Sorcery",
		Types:     card.TypeSorcery,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerCast,
			Cost:         card.NoCost{},
			Effect:       card.FetchLand{ToHand: []string{"basic land"}, ToBattlefield: []string{"basic land"}},
			Availability: 1,
		}},
	}
}

func DarkRitual() *card.Definition {
	return &card.Definition{
		Name:      "Dark Ritual",
		ManaValue: 1,
		Cost:      cost("{B}"),
		TypeLine:  "Instant",
		Types:     card.TypeInstant,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerCast,
			Cost:         card.NoCost{},
			Effect:       card.ProduceMana{Pool: mana.NewPool(mana.Black, mana.Black, mana.Black)},
			Availability: 1,
		}},
	}
}

func Divination() *card.Definition {
	return &card.Definition{
		Name:      "Divination",
		ManaValue: 3,
		Cost:      cost("{2}{U}"),
		TypeLine:  "Sorcery",
		Types:     card.TypeSorcery,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerCast,
			Cost:         card.NoCost{},
			Effect:       card.Draw{Distribution: []int{2}},
			Availability: 1,
		}},
	}
}

// DimirSignet taps and pays one to add two colored mana.
func DimirSignet() *card.Definition {
	dimir := mana.Hybrid(mana.ColorBlack, mana.ColorBlue)
	return &card.Definition{
		Name:      "Dimir Signet",
		ManaValue: 2,
		Cost:      cost("{2}"),
		TypeLine:  "Artifact",
		Types:     card.TypeArtifact,
		Produces:  produces(dimir),
		Abilities: []card.Ability{{
			Trigger:      card.TriggerActivated,
			Cost:         card.TapManaCost{Pool: mana.MustParseCost("{1}")},
			Effect:       card.ProduceMana{Pool: mana.NewPool(mana.Black, mana.Blue)},
			Availability: 1,
		}},
	}
}

func DimirAqueduct() *card.Definition {
	dimir := mana.Hybrid(mana.ColorBlack, mana.ColorBlue)
	return &card.Definition{
		Name:           "Dimir Aqueduct",
		TypeLine:       "Land",
		Types:          card.TypeLand,
		Produces:       produces(dimir),
		EntersTapped:   true,
		AdditionalCost: card.ReturnLandToHand,
		Abilities:      []card.Ability{tapFor(mana.Black, mana.Blue)},
	}
}

func Exploration() *card.Definition {
	return &card.Definition{
		Name:      "Exploration",
		ManaValue: 1,
		Cost:      cost("{G}"),
		TypeLine:  "Enchantment",
		Types:     card.TypeEnchantment,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerStatic,
			Cost:         card.NoCost{},
			Effect:       card.LandLimitIncrease{N: 1},
			Availability: 1,
		}},
	}
}

func ElementalBond() *card.Definition {
	return &card.Definition{
		Name:      "Elemental Bond",
		ManaValue: 3,
		Cost:      cost("{2}{G}"),
		TypeLine:  "Enchantment",
		Types:     card.TypeEnchantment,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerUpkeep,
			Cost:         card.NoCost{},
			Effect:       card.Draw{Distribution: []int{0, 0, 1, 1, 1, 1, 2, 2, 3, 4}},
			Availability: 1,
		}},
	}
}

// Catalog builds a catalog holding every fixture.
func Catalog() *card.Catalog {
	c := card.NewCatalog()
	for _, def := range []*card.Definition{
		Plains(), Island(), Swamp(), Mountain(), Forest(),
		SolRing(), CommandersSphere(), CommandTower(), JungleHollow(),
		Elk(), Dragon(), EvolvingWilds(), Cultivate(), DarkRitual(),
		Divination(), DimirSignet(), DimirAqueduct(), Exploration(),
		ElementalBond(),
	} {
		if err := c.Add(def); err != nil {
			panic(err)
		}
	}
	return c
}
