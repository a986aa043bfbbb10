package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magefree/decksim/internal/game/card/cardtest"
	"github.com/magefree/decksim/internal/game/mana"
)

func TestZone_PipDemand(t *testing.T) {
	z := newZone(cardtest.Elk(), cardtest.Cultivate(), cardtest.DarkRitual(), cardtest.SolRing(), cardtest.Forest())
	pips := z.PipDemand()

	assert.Equal(t, Pips{1, 0, 2, 0, 0}, pips)
	assert.True(t, pips.Normalize())
	assert.InDelta(t, 1.0, pips.Total(), 1e-9)
	assert.InDelta(t, 2.0/3, pips[2], 1e-9)
}

func TestPips_CountPool(t *testing.T) {
	var pips Pips
	pips.CountPool(mana.NewPool(mana.Any, mana.Hybrid(mana.ColorBlack, mana.ColorGreen), mana.Colorless, mana.Red))

	assert.InDelta(t, 0.2+0.5, pips[0], 1e-9)
	assert.InDelta(t, 0.2, pips[1], 1e-9)
	assert.InDelta(t, 0.2+0.5, pips[2], 1e-9)
	assert.InDelta(t, 1.2, pips[3], 1e-9)
	assert.InDelta(t, 0.2, pips[4], 1e-9)
}

func TestPips_NormalizeEmpty(t *testing.T) {
	var pips Pips
	pips.CountPool(mana.NewPool(mana.Colorless, mana.Colorless))
	assert.False(t, pips.Normalize())
	assert.Equal(t, Pips{}, pips)
}

func TestPips_PrioritizedDelta(t *testing.T) {
	demand := Pips{0.5, 0, 0.3, 0.2, 0}
	supply := Pips{0.1, 0.4, 0.2, 0.2, 0.1}

	assert.Equal(t, []mana.Color{mana.ColorBlack, mana.ColorGreen}, demand.PrioritizedDelta(supply))
	assert.Equal(t, []mana.Color{mana.ColorBlack, mana.ColorGreen, mana.ColorRed}, demand.PrioritizedDelta(Pips{}))
	assert.Empty(t, Pips{}.PrioritizedDelta(supply))
}
