package card

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/magefree/decksim/internal/game/mana"
)

// Trigger is when an ability happens.
type Trigger int

const (
	TriggerCast Trigger = iota
	TriggerActivated
	TriggerUpkeep
	// TriggerStatic applies every turn while the permanent is on the
	// battlefield.
	TriggerStatic
)

var triggerNames = map[Trigger]string{
	TriggerCast:      "CAST",
	TriggerActivated: "ACTIVATED",
	TriggerUpkeep:    "UPKEEP",
	TriggerStatic:    "STATIC",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TRIGGER_%d", int(t))
}

// Cost is what has to be paid to use an ability. The set of implementations
// is closed: NoCost, TapCost, SacrificeCost, ManaCost, TapManaCost,
// TapSacrificeCost and TapManaSacrificeCost.
type Cost interface {
	// Taps reports whether paying the cost taps the source.
	Taps() bool
	// Sacrifices reports whether paying the cost sacrifices the source.
	Sacrifices() bool
	// Mana returns the mana part of the cost, if any.
	Mana() (mana.Pool, bool)
	String() string

	isCost()
}

type NoCost struct{}

type TapCost struct{}

type SacrificeCost struct{}

type ManaCost struct{ Pool mana.Pool }

type TapManaCost struct{ Pool mana.Pool }

type TapSacrificeCost struct{}

type TapManaSacrificeCost struct{ Pool mana.Pool }

func (NoCost) Taps() bool               { return false }
func (TapCost) Taps() bool              { return true }
func (SacrificeCost) Taps() bool        { return false }
func (ManaCost) Taps() bool             { return false }
func (TapManaCost) Taps() bool          { return true }
func (TapSacrificeCost) Taps() bool     { return true }
func (TapManaSacrificeCost) Taps() bool { return true }

func (NoCost) Sacrifices() bool               { return false }
func (TapCost) Sacrifices() bool              { return false }
func (SacrificeCost) Sacrifices() bool        { return true }
func (ManaCost) Sacrifices() bool             { return false }
func (TapManaCost) Sacrifices() bool          { return false }
func (TapSacrificeCost) Sacrifices() bool     { return true }
func (TapManaSacrificeCost) Sacrifices() bool { return true }

func (NoCost) Mana() (mana.Pool, bool)                 { return mana.Pool{}, false }
func (TapCost) Mana() (mana.Pool, bool)                { return mana.Pool{}, false }
func (SacrificeCost) Mana() (mana.Pool, bool)          { return mana.Pool{}, false }
func (c ManaCost) Mana() (mana.Pool, bool)             { return c.Pool, true }
func (c TapManaCost) Mana() (mana.Pool, bool)          { return c.Pool, true }
func (TapSacrificeCost) Mana() (mana.Pool, bool)       { return mana.Pool{}, false }
func (c TapManaSacrificeCost) Mana() (mana.Pool, bool) { return c.Pool, true }

func (NoCost) String() string                 { return "none" }
func (TapCost) String() string                { return "{T}" }
func (SacrificeCost) String() string          { return "sacrifice" }
func (c ManaCost) String() string             { return c.Pool.String() }
func (c TapManaCost) String() string          { return c.Pool.String() + ", {T}" }
func (TapSacrificeCost) String() string       { return "{T}, sacrifice" }
func (c TapManaSacrificeCost) String() string { return c.Pool.String() + ", {T}, sacrifice" }

func (NoCost) isCost()               {}
func (TapCost) isCost()              {}
func (SacrificeCost) isCost()        {}
func (ManaCost) isCost()             {}
func (TapManaCost) isCost()          {}
func (TapSacrificeCost) isCost()     {}
func (TapManaSacrificeCost) isCost() {}

// ManaValueOf returns the value of the mana part of a cost, zero if none.
func ManaValueOf(c Cost) int {
	if pool, ok := c.Mana(); ok {
		return pool.Value()
	}
	return 0
}

// Effect is what an ability does. The set of implementations is closed:
// ProduceMana, FetchLand, Draw and LandLimitIncrease. Consumers switch on
// the concrete type and treat anything else as a programming error.
type Effect interface {
	String() string
	isEffect()
}

// ProduceMana adds mana to the pool, like a land, a mana rock or a ritual.
type ProduceMana struct {
	Pool mana.Pool
}

// FetchLand searches the library for lands by type, e.g. "basic land" or
// "forest/island". Each entry fetches one land.
type FetchLand struct {
	ToHand        []string
	ToBattlefield []string
}

// Draw draws a number of cards picked uniformly from Distribution.
type Draw struct {
	Distribution []int
}

// LandLimitIncrease allows additional land plays.
type LandLimitIncrease struct {
	N int
}

func (e ProduceMana) String() string { return "add " + e.Pool.String() }

func (e FetchLand) String() string {
	var parts []string
	if len(e.ToHand) > 0 {
		parts = append(parts, "to hand: "+strings.Join(e.ToHand, ", "))
	}
	if len(e.ToBattlefield) > 0 {
		parts = append(parts, "to battlefield: "+strings.Join(e.ToBattlefield, ", "))
	}
	return "fetch land (" + strings.Join(parts, "; ") + ")"
}

func (e Draw) String() string { return fmt.Sprintf("draw %v", e.Distribution) }

func (e LandLimitIncrease) String() string { return fmt.Sprintf("play %d additional land(s)", e.N) }

func (ProduceMana) isEffect()       {}
func (FetchLand) isEffect()         {}
func (Draw) isEffect()              {}
func (LandLimitIncrease) isEffect() {}

// Count picks the number of cards to draw.
func (e Draw) Count(rng *rand.Rand) int {
	switch len(e.Distribution) {
	case 0:
		return 0
	case 1:
		return e.Distribution[0]
	}
	return e.Distribution[rng.Intn(len(e.Distribution))]
}

// Ability is a declarative description of something a card does.
type Ability struct {
	Trigger Trigger
	Cost    Cost
	Effect  Effect
	// Availability is the chance the ability can be used each time it is
	// considered; 1 means always.
	Availability float64
}

// Available rolls against the ability's availability.
func (a Ability) Available(rng *rand.Rand) bool {
	if a.Availability >= 1 {
		return true
	}
	return rng.Float64() < a.Availability
}

func (a Ability) String() string {
	cost := "none"
	if a.Cost != nil {
		cost = a.Cost.String()
	}
	effect := "none"
	if a.Effect != nil {
		effect = a.Effect.String()
	}
	s := fmt.Sprintf("%s [%s]: %s", a.Trigger, cost, effect)
	if a.Availability < 1 {
		s += fmt.Sprintf(" (%.0f%%)", a.Availability*100)
	}
	return s
}

// AdditionalCost is an extra obligation when a card enters play.
type AdditionalCost int

const (
	NoAdditionalCost AdditionalCost = iota
	// ReturnLandToHand returns a land you control to its owner's hand.
	ReturnLandToHand
)
