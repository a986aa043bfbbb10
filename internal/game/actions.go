package game

import (
	"sort"

	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
	"github.com/magefree/decksim/internal/game/rules"
)

func isFetch(e card.Effect) bool {
	_, ok := e.(card.FetchLand)
	return ok
}

func isDraw(e card.Effect) bool {
	_, ok := e.(card.Draw)
	return ok
}

// activation is an activated ability of a permanent that can be paid for.
type activation struct {
	card  *card.Card
	index int
	spent mana.Pool
}

func (a activation) ability() card.Ability {
	return a.card.Def.Abilities[a.index]
}

// poolWithout returns the pool minus what the permanent itself put in, for
// abilities that tap or sacrifice it.
func (t *turnState) poolWithout(c *card.Card, cost card.Cost) (mana.Pool, error) {
	pool := t.pool.Clone()
	contribution, ok := t.counted[c.ID]
	if !ok || !(cost.Taps() || cost.Sacrifices()) {
		return pool, nil
	}
	if err := pool.RemoveExact(contribution); err != nil {
		return mana.Pool{}, invariantError("%s contributed %s: %v", c.Name(), contribution, err)
	}
	return pool, nil
}

// findActivations lists the activated abilities on the battlefield matching
// the effect filter that consume their permanent and can be paid for,
// cheapest first.
func (t *turnState) findActivations(match func(card.Effect) bool, skipSacrifice bool) ([]activation, error) {
	var result []activation
	for _, c := range t.game.Battlefield.Cards() {
		for idx, a := range c.Def.Abilities {
			if a.Trigger != card.TriggerActivated || a.Cost == nil || !match(a.Effect) {
				continue
			}
			// Abilities paid with mana alone could be activated without end.
			if !a.Cost.Taps() && !a.Cost.Sacrifices() {
				continue
			}
			if a.Cost.Taps() && c.Tapped {
				continue
			}
			if skipSacrifice && a.Cost.Sacrifices() {
				continue
			}
			if !t.available(c, idx) {
				continue
			}
			pool, err := t.poolWithout(c, a.Cost)
			if err != nil {
				return nil, err
			}
			manaCost, _ := a.Cost.Mana()
			spent, ok := pool.CanAlsoPayFor(t.spent, manaCost)
			if !ok {
				continue
			}
			result = append(result, activation{card: c, index: idx, spent: spent})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return card.ManaValueOf(result[i].ability().Cost) < card.ManaValueOf(result[j].ability().Cost)
	})
	return result, nil
}

func (t *turnState) tryActivate(match func(card.Effect) bool, skipSacrifice bool) (bool, error) {
	candidates, err := t.findActivations(match, skipSacrifice)
	if err != nil || len(candidates) == 0 {
		return false, err
	}
	return true, t.activate(candidates[0])
}

func (t *turnState) activate(act activation) error {
	c := act.card
	a := act.ability()
	t.logger.Debug("activate", zap.String("card", c.Name()), zap.Stringer("ability", a))

	pool, err := t.poolWithout(c, a.Cost)
	if err != nil {
		return err
	}
	t.pool = pool
	delete(t.counted, c.ID)
	t.spent = act.spent

	if a.Cost.Taps() {
		c.Tapped = true
	}
	if a.Cost.Sacrifices() {
		if _, ok := t.game.Battlefield.Take(c.ID); !ok {
			return invariantError("sacrificed %s is not on the battlefield", c.Name())
		}
		t.game.Graveyard.Add(c)
		t.game.publish(rules.EventSacrificedPermanent, c)
	}
	t.game.publish(rules.EventActivatedAbility, c)
	return t.resolve(c, a.Effect)
}

// resolve applies an effect.
func (t *turnState) resolve(source *card.Card, effect card.Effect) error {
	switch e := effect.(type) {
	case card.ProduceMana:
		t.pool.AddPool(e.Pool)
	case card.FetchLand:
		t.fetch(e)
	case card.Draw:
		t.draw(e.Count(t.game.rng))
	case card.LandLimitIncrease:
		t.landLimit += e.N
	default:
		return invariantError("%s has an unknown effect %T", source.Name(), effect)
	}
	return nil
}

// fetch moves lands from the library to the hand and the battlefield. Lands
// put onto the battlefield enter tapped. Missing land types are skipped.
func (t *turnState) fetch(e card.FetchLand) {
	g := t.game
	for _, typeName := range e.ToHand {
		c, ok := g.Library.TakeLand(typeName)
		if !ok {
			t.logger.Debug("no land to fetch", zap.String("type", typeName))
			continue
		}
		t.logger.Debug("fetch to hand", zap.String("card", c.Name()))
		g.Hand.Add(c)
		g.publish(rules.EventLandPutIntoHand, c)
	}
	for _, typeName := range e.ToBattlefield {
		c, ok := g.Library.TakeLand(typeName)
		if !ok {
			t.logger.Debug("no land to fetch", zap.String("type", typeName))
			continue
		}
		t.logger.Debug("fetch to battlefield", zap.String("card", c.Name()))
		c.Tapped = true
		g.Battlefield.Add(c)
		g.publish(rules.EventLandPutOntoBattlefield, c)
	}
	g.Library.Shuffle(g.rng)
}

// castable returns the nonland cards of the hand that can be paid for and
// have an ability matching the filter, cheapest first.
func (t *turnState) castable(match func(idx int, c *card.Card) bool) []*card.Card {
	var result []*card.Card
	for _, c := range t.game.Hand.Cards() {
		if c.Is(card.TypeLand) {
			continue
		}
		if _, ok := t.pool.CanAlsoPayFor(t.spent, c.Def.CastingCost()); !ok {
			continue
		}
		for idx := range c.Def.Abilities {
			if match(idx, c) {
				result = append(result, c)
				break
			}
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Def.ManaValue < result[j].Def.ManaValue
	})
	return result
}

func (t *turnState) tryPlayRampSpell() (bool, error) {
	landInHand := len(t.game.Hand.Query(card.TypeLand)) > 0
	candidates := t.castable(func(idx int, c *card.Card) bool {
		switch c.Def.Abilities[idx].Effect.(type) {
		case card.ProduceMana, card.FetchLand:
			return true
		case card.LandLimitIncrease:
			return landInHand
		}
		return false
	})
	if len(candidates) == 0 {
		return false, nil
	}
	return true, t.playCard(candidates[0])
}

func (t *turnState) tryPlayDrawSpell() (bool, error) {
	candidates := t.castable(func(idx int, c *card.Card) bool {
		a := c.Def.Abilities[idx]
		return a.Trigger == card.TriggerCast && isDraw(a.Effect)
	})
	if len(candidates) == 0 {
		return false, nil
	}
	return true, t.playCard(candidates[0])
}

func (t *turnState) tryPlayBiggestSpell() (bool, error) {
	var best *card.Card
	for _, c := range t.game.Hand.Cards() {
		if c.Is(card.TypeLand) {
			continue
		}
		if _, ok := t.pool.CanAlsoPayFor(t.spent, c.Def.CastingCost()); !ok {
			continue
		}
		if best == nil || c.Def.ManaValue > best.Def.ManaValue {
			best = c
		}
	}
	if best == nil {
		return false, nil
	}
	return true, t.playCard(best)
}

func (t *turnState) tryPlayCommander() (bool, error) {
	for _, c := range t.game.Command.Cards() {
		if _, ok := t.pool.CanAlsoPayFor(t.spent, c.Def.CastingCost()); !ok {
			continue
		}
		if _, ok := t.game.Command.Take(c.ID); !ok {
			return false, invariantError("commander %s left the command zone", c.Name())
		}
		if t.game.stats.CommanderTurn == 0 {
			t.game.stats.CommanderTurn = t.number
		}
		t.logger.Debug("cast commander", zap.String("card", c.Name()))
		t.game.publish(rules.EventCommanderCast, c)
		return true, t.resolveCard(c)
	}
	return false, nil
}

// playCard plays a card from the hand.
func (t *turnState) playCard(c *card.Card) error {
	if _, ok := t.game.Hand.Take(c.ID); !ok {
		return invariantError("%s is not in hand", c.Name())
	}
	return t.resolveCard(c)
}

// resolveCard pays for a card that already left its zone and puts it where
// it belongs.
func (t *turnState) resolveCard(c *card.Card) error {
	def := c.Def
	if c.Is(card.TypeLand) {
		if t.landsPlayed >= t.landLimit {
			return invariantError("land %s played over the limit of %d", c.Name(), t.landLimit)
		}
		t.landsPlayed++
	}

	if def.Cost != nil {
		spent, ok := t.pool.CanAlsoPayFor(t.spent, *def.Cost)
		if !ok {
			return invariantError("cannot pay %s for %s from %s (spent %s)", def.Cost, c.Name(), t.pool, t.spent)
		}
		t.spent = spent
	}

	permanent := def.IsPermanent()
	c.Tapped = permanent && def.EntersTapped
	if permanent {
		t.game.Battlefield.Add(c)
	} else {
		t.game.Graveyard.Add(c)
	}
	if c.Is(card.TypeLand) {
		t.game.publish(rules.EventLandPlayed, c)
	} else {
		t.game.publish(rules.EventSpellCast, c)
	}
	t.logger.Debug("play card",
		zap.String("card", c.Name()),
		zap.Bool("permanent", permanent),
		zap.Stringer("spent", t.spent),
	)

	for idx, a := range def.Abilities {
		switch e := a.Effect.(type) {
		case card.ProduceMana:
			switch {
			case permanent && !c.Tapped && a.Trigger == card.TriggerActivated && isTapCost(a.Cost):
				if t.available(c, idx) {
					t.countMana(c, e.Pool)
				}
			case a.Trigger == card.TriggerCast:
				if t.available(c, idx) {
					t.pool.AddPool(e.Pool)
				}
			}
		case card.FetchLand, card.Draw:
			if a.Trigger == card.TriggerCast && t.available(c, idx) {
				if err := t.resolve(c, e); err != nil {
					return err
				}
			}
		case card.LandLimitIncrease:
			if a.Trigger == card.TriggerCast || (a.Trigger == card.TriggerStatic && permanent) {
				t.landLimit += e.N
			}
		default:
			return invariantError("%s has an unknown effect %T", c.Name(), a.Effect)
		}
	}

	if def.AdditionalCost == card.ReturnLandToHand {
		t.returnLandToHand(c)
	}
	return nil
}

func isTapCost(c card.Cost) bool {
	_, ok := c.(card.TapCost)
	return ok
}
