package game

import (
	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game/card"
)

// maxMulligans bounds the redraws of a hand that keeps missing lands. The
// last hand drawn is kept once it is reached.
const maxMulligans = 1000

func (g *Game) drawOpeningHand(policy MulliganType) error {
	switch policy {
	case MulliganNone:
		g.Library.Shuffle(g.rng)
		return g.drawHand()
	case MulliganThreeLands:
		original := g.Library.Clone()
		g.Library.Shuffle(g.rng)
		if err := g.drawHand(); err != nil {
			return err
		}
		for len(g.Hand.Query(card.TypeLand)) < 3 {
			if g.stats.MulliganCount >= maxMulligans {
				g.logger.Warn("keeping hand without three lands",
					zap.Int("mulligans", g.stats.MulliganCount),
					zap.Int("lands", len(g.Hand.Query(card.TypeLand))),
				)
				break
			}
			g.logger.Debug("not enough lands in hand, mulligan",
				zap.Int("lands", len(g.Hand.Query(card.TypeLand))),
			)
			g.Library = original.Clone()
			g.Library.Shuffle(g.rng)
			g.Hand.Clear()
			if err := g.drawHand(); err != nil {
				return err
			}
			g.stats.MulliganCount++
		}
		return nil
	default:
		return setupError("unknown mulligan type %d", int(policy))
	}
}

func (g *Game) drawHand() error {
	for i := 0; i < openingHandSize; i++ {
		if !g.drawCard() {
			return invariantError("library ran out while drawing the opening hand")
		}
	}
	return nil
}
