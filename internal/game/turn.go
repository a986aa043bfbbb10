package game

import (
	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
	"github.com/magefree/decksim/internal/game/rules"
)

// turnState is the scratch state of a single turn.
type turnState struct {
	game   *Game
	number int

	pool  mana.Pool
	spent mana.Pool
	// filtered is the mana spent activating filters like signets. It is in
	// both pool and spent and is left out of the statistics.
	filtered int

	landsPlayed int
	landLimit   int

	// counted holds the mana each permanent put into the pool this turn.
	counted map[int]mana.Pool
	// rolls caches availability rolls so each ability is rolled once a turn.
	rolls map[abilityKey]bool

	stats  TurnStats
	logger *zap.Logger
}

type abilityKey struct {
	card    int
	ability int
}

// newTurnState starts a turn. Turn-scoped watchers start over.
func newTurnState(g *Game, number int) *turnState {
	g.turn = number
	g.registry.ResetWatchersByScope(rules.WatcherScopeTurn)
	return &turnState{
		game:      g,
		number:    number,
		landLimit: 1,
		counted:   make(map[int]mana.Pool),
		rolls:     make(map[abilityKey]bool),
		stats:     TurnStats{Turn: number},
		logger:    g.logger.With(zap.Int("turn", number)),
	}
}

func (t *turnState) untap() {
	t.game.Battlefield.UntapAll()
	for _, c := range t.game.Battlefield.Cards() {
		for _, a := range c.Def.Abilities {
			if inc, ok := a.Effect.(card.LandLimitIncrease); ok && a.Trigger == card.TriggerStatic {
				t.landLimit += inc.N
			}
		}
	}
}

// available rolls an ability's availability once per turn.
func (t *turnState) available(c *card.Card, idx int) bool {
	a := c.Def.Abilities[idx]
	if a.Availability >= 1 {
		return true
	}
	key := abilityKey{card: c.ID, ability: idx}
	if ok, rolled := t.rolls[key]; rolled {
		return ok
	}
	ok := a.Available(t.game.rng)
	t.rolls[key] = ok
	return ok
}

func (t *turnState) countMana(c *card.Card, produced mana.Pool) {
	t.pool.AddPool(produced)
	contribution := t.counted[c.ID]
	contribution.AddPool(produced)
	t.counted[c.ID] = contribution
}

// upkeep gathers the mana of untapped permanents and resolves upkeep
// triggers.
func (t *turnState) upkeep() error {
	for _, c := range t.game.Battlefield.Cards() {
		for idx, a := range c.Def.Abilities {
			switch a.Trigger {
			case card.TriggerActivated:
				produce, ok := a.Effect.(card.ProduceMana)
				if !ok || c.Tapped || !t.available(c, idx) {
					continue
				}
				switch a.Cost.(type) {
				case card.TapCost:
					t.countMana(c, produce.Pool)
				case card.NoCost:
					t.pool.AddPool(produce.Pool)
				}
			case card.TriggerUpkeep:
				if !t.available(c, idx) {
					continue
				}
				t.logger.Debug("upkeep trigger", zap.String("card", c.Name()), zap.Stringer("effect", a.Effect))
				if err := t.resolve(c, a.Effect); err != nil {
					return err
				}
			}
		}
	}
	t.gatherFilters()

	t.logger.Debug("mana available",
		zap.Stringer("pool", t.pool),
		zap.Int("value", t.pool.Value()),
	)
	return nil
}

// gatherFilters folds in producers that need mana themselves, like signets,
// once the plain producers are counted.
func (t *turnState) gatherFilters() {
	for _, c := range t.game.Battlefield.Cards() {
		if c.Tapped {
			continue
		}
		for idx, a := range c.Def.Abilities {
			cost, ok := a.Cost.(card.TapManaCost)
			if !ok || a.Trigger != card.TriggerActivated {
				continue
			}
			produce, ok := a.Effect.(card.ProduceMana)
			if !ok || !t.available(c, idx) {
				continue
			}
			spent, ok := t.pool.CanAlsoPayFor(t.spent, cost.Pool)
			if !ok {
				continue
			}
			t.spent = spent
			t.filtered += cost.Pool.Value()
			t.countMana(c, produce.Pool)
			break
		}
	}
}

// draw draws n cards, stopping when the library runs out.
func (t *turnState) draw(n int) {
	for i := 0; i < n; i++ {
		if !t.game.drawCard() {
			return
		}
	}
}

// main runs the action loop until no action applies.
func (t *turnState) main() error {
	for {
		acted, err := t.act()
		if err != nil {
			return err
		}
		if !acted {
			t.logger.Debug("nothing more to do",
				zap.Stringer("pool", t.pool),
				zap.Stringer("spent", t.spent),
			)
			return nil
		}
		t.stats.Actions++
	}
}

// act takes the first applicable action, in order of priority.
func (t *turnState) act() (bool, error) {
	steps := []func() (bool, error){
		t.tryPlayLand,
		t.tryPlayCommander,
		func() (bool, error) { return t.tryActivate(isFetch, false) },
		t.tryPlayRampSpell,
		func() (bool, error) { return t.tryActivate(isDraw, t.landsPlayed > 0) },
		t.tryPlayDrawSpell,
		t.tryPlayBiggestSpell,
	}
	for _, step := range steps {
		acted, err := step()
		if err != nil || acted {
			return acted, err
		}
	}
	return false, nil
}

// end fills in the turn statistics from the turn's events and what is left
// in play.
func (t *turnState) end() TurnStats {
	events := t.game.turnEvents
	t.stats.CardsDrawn = events.Count(rules.EventDrewCard)
	t.stats.CardsPlayed = events.Count(rules.EventSpellCast)
	t.stats.LandsPlayed = events.Count(rules.EventLandPlayed)
	t.stats.LandsCheated = events.Count(rules.EventLandPutOntoBattlefield)
	t.stats.ManaAvailable = t.pool.Value() - t.filtered
	t.stats.ManaSpent = t.spent.Value() - t.filtered
	t.stats.CardsInHand = t.game.Hand.Len()
	return t.stats
}
