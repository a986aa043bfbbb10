package game

import (
	"sort"

	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/rules"
	"github.com/magefree/decksim/internal/game/zone"
)

// sortByColorsProduced orders cards by the number of colors they produce,
// most first. Equal cards keep their order.
func sortByColorsProduced(cards []*card.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Def.ProducedColorCount() > cards[j].Def.ProducedColorCount()
	})
}

// chooseLand picks the land to play: the first land producing the color the
// hand needs most compared to what the pool already supplies, falling back
// to the most flexible land.
func (t *turnState) chooseLand(lands []*card.Card) *card.Card {
	sortByColorsProduced(lands)

	demand := t.game.Hand.PipDemand()
	if demand.Normalize() {
		var supply zone.Pips
		supply.CountPool(t.pool)
		// An empty pool leaves supply at zero.
		supply.Normalize()
		wanted := demand.PrioritizedDelta(supply)
		if len(wanted) > 0 {
			t.logger.Debug("land preference", zap.Stringer("color", wanted[0]))
		}
		for _, color := range wanted {
			for _, land := range lands {
				if p := land.Def.Produces; p != nil && p.Contains(color) {
					return land
				}
			}
		}
	}
	return lands[0]
}

func (t *turnState) tryPlayLand() (bool, error) {
	if t.landsPlayed >= t.landLimit {
		return false, nil
	}
	lands := t.game.Hand.Query(card.TypeLand)
	if len(lands) == 0 {
		return false, nil
	}
	return true, t.playCard(t.chooseLand(lands))
}

// returnLandToHand bounces the other land on the battlefield producing the
// fewest colors. Mana it already added to the pool stays there.
func (t *turnState) returnLandToHand(played *card.Card) {
	var target *card.Card
	for _, c := range t.game.Battlefield.Query(card.TypeLand) {
		if c.ID == played.ID {
			continue
		}
		if target == nil || c.Def.ProducedColorCount() < target.Def.ProducedColorCount() {
			target = c
		}
	}
	if target == nil {
		target = played
	}
	if _, ok := t.game.Battlefield.Take(target.ID); !ok {
		return
	}
	delete(t.counted, target.ID)
	target.Tapped = false
	t.game.Hand.Add(target)
	t.game.publish(rules.EventLandReturned, target)
	t.logger.Debug("return land to hand", zap.String("card", target.Name()), zap.String("source", played.Name()))
}
