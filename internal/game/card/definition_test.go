package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/card/cardtest"
	"github.com/magefree/decksim/internal/game/mana"
)

func TestDefinition_IsRamp(t *testing.T) {
	cases := []struct {
		def  *card.Definition
		want bool
	}{
		{cardtest.SolRing(), true},
		{cardtest.CommandersSphere(), true},
		{cardtest.DarkRitual(), true},
		{cardtest.Cultivate(), true},
		{cardtest.Exploration(), true},
		{cardtest.EvolvingWilds(), true},
		{cardtest.Forest(), false},
		{cardtest.CommandTower(), false},
		{cardtest.Elk(), false},
		{cardtest.Divination(), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.def.IsRamp(), tc.def.Name)
	}
}

func TestDefinition_CalculateProducedMana(t *testing.T) {
	produced := cardtest.CommandersSphere().CalculateProducedMana()
	require.NotNil(t, produced)
	assert.Equal(t, mana.Any, *produced)

	produced = cardtest.DimirSignet().CalculateProducedMana()
	require.NotNil(t, produced)
	assert.Equal(t, mana.Hybrid(mana.ColorBlack, mana.ColorBlue), *produced)

	assert.Nil(t, cardtest.Elk().CalculateProducedMana())
	assert.Nil(t, cardtest.Divination().CalculateProducedMana())
}

func TestDefinition_Helpers(t *testing.T) {
	assert.True(t, cardtest.SolRing().IsPermanent())
	assert.False(t, cardtest.DarkRitual().IsPermanent())
	assert.True(t, cardtest.Divination().IsDraw())
	assert.False(t, cardtest.Forest().IsDraw())

	assert.Equal(t, 0, cardtest.Forest().CastingCost().Value())
	assert.Equal(t, 3, cardtest.Elk().CastingCost().Value())

	assert.Equal(t, 5, cardtest.CommandTower().ProducedColorCount())
	assert.Equal(t, 2, cardtest.JungleHollow().ProducedColorCount())
	assert.Equal(t, 1, cardtest.Swamp().ProducedColorCount())
	assert.Equal(t, 0, cardtest.SolRing().ProducedColorCount())
	assert.Equal(t, 0, cardtest.Elk().ProducedColorCount())
}

func TestCard_String(t *testing.T) {
	c := card.New(cardtest.SolRing())
	c.ID = 4
	assert.Equal(t, "Sol Ring - [Artifact] #4 - {1} (1)", c.String())

	c.Tapped = true
	assert.Equal(t, "Sol Ring - [Artifact] #4 *TAPPED* - {1} (1)", c.String())

	clone := c.Clone()
	clone.Tapped = false
	assert.True(t, c.Tapped)
	assert.Same(t, c.Def, clone.Def)
}

func TestCatalog(t *testing.T) {
	c := cardtest.Catalog()

	def, ok := c.Get("  sol RING ")
	require.True(t, ok)
	assert.Equal(t, "Sol Ring", def.Name)

	_, ok = c.Get("Black Lotus")
	assert.False(t, ok)

	assert.Error(t, c.Add(cardtest.SolRing()))
	assert.Error(t, c.Add(&card.Definition{}))

	names := c.Names()
	assert.Len(t, names, c.Len())
	assert.IsIncreasing(t, names)
}
