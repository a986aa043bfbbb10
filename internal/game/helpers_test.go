package game

import (
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
	"github.com/magefree/decksim/internal/game/zone"
)

func newTestGame(t *testing.T) *Game {
	g := New(zaptest.NewLogger(t))
	g.rng = rand.New(rand.NewSource(1))
	return g
}

func put(z *zone.Zone, id int, def *card.Definition) *card.Card {
	c := card.New(def)
	c.ID = id
	z.Add(c)
	return c
}

func names(cards []*card.Card) []string {
	result := make([]string, len(cards))
	for i, c := range cards {
		result[i] = c.Name()
	}
	return result
}

func tapManaSacrifice(cost string) card.Cost {
	return card.TapManaSacrificeCost{Pool: mana.MustParseCost(cost)}
}
