package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/card/cardtest"
	"github.com/magefree/decksim/internal/game/mana"
)

func TestTurn_GatherManaPool(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.CommandTower())
	put(g.Battlefield, 2, cardtest.SolRing())
	put(g.Battlefield, 3, cardtest.Swamp())
	put(g.Battlefield, 4, cardtest.CommandersSphere())
	put(g.Battlefield, 5, cardtest.Elk())

	turn := newTurnState(g, 42)
	require.NoError(t, turn.upkeep())

	assert.Equal(t, 2, turn.pool.Colorless)
	assert.Equal(t, 2, turn.pool.Any)
	assert.Equal(t, 1, turn.pool.Black)
	assert.Len(t, turn.counted, 4)
	assert.Equal(t, 2, turn.counted[2].Value())
}

func TestTurn_GatherSkipsTapped(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.Swamp()).Tapped = true
	put(g.Battlefield, 2, cardtest.Forest())

	turn := newTurnState(g, 1)
	require.NoError(t, turn.upkeep())
	assert.Equal(t, mana.NewPool(mana.Green).String(), turn.pool.String())
}

func TestTurn_GatherSignet(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.Swamp())
	put(g.Battlefield, 2, cardtest.DimirSignet())

	turn := newTurnState(g, 1)
	require.NoError(t, turn.upkeep())

	assert.Equal(t, 3, turn.pool.Value())
	assert.Equal(t, 2, turn.pool.Black)
	assert.Equal(t, 1, turn.pool.Blue)
	assert.Equal(t, 1, turn.spent.Value())
	assert.Equal(t, 2, turn.counted[2].Value())

	stats := turn.end()
	assert.Equal(t, 2, stats.ManaAvailable)
	assert.Zero(t, stats.ManaSpent)
}

func TestTurn_SignetNetOfActivation(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.Swamp())
	put(g.Battlefield, 2, cardtest.Swamp())
	put(g.Battlefield, 3, cardtest.DimirSignet())
	put(g.Hand, 4, cardtest.DarkRitual())

	turn := newTurnState(g, 1)
	require.NoError(t, turn.upkeep())
	require.NoError(t, turn.playCard(g.Hand.Cards()[0]))

	stats := turn.end()
	assert.Equal(t, 7, turn.pool.Value())
	assert.Equal(t, 6, stats.ManaAvailable)
	assert.Equal(t, 1, stats.ManaSpent)
}

func TestTurn_SignetNeedsMana(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.DimirSignet())

	turn := newTurnState(g, 1)
	require.NoError(t, turn.upkeep())
	assert.True(t, turn.pool.IsEmpty())
	assert.True(t, turn.spent.IsEmpty())
}

func TestTurn_GatherRespectsAvailability(t *testing.T) {
	sometimes := cardtest.Forest()
	sometimes.Abilities[0].Availability = 0

	g := newTestGame(t)
	put(g.Battlefield, 1, sometimes)

	turn := newTurnState(g, 1)
	require.NoError(t, turn.upkeep())
	assert.True(t, turn.pool.IsEmpty())
}

func TestTurn_UpkeepDraw(t *testing.T) {
	bond := cardtest.ElementalBond()
	bond.Abilities[0].Effect = card.Draw{Distribution: []int{2}}

	g := newTestGame(t)
	put(g.Battlefield, 1, bond)
	for i := 0; i < 5; i++ {
		put(g.Library, 10+i, cardtest.Forest())
	}

	turn := newTurnState(g, 1)
	require.NoError(t, turn.upkeep())
	assert.Equal(t, 2, g.Hand.Len())
	assert.Equal(t, 2, turn.end().CardsDrawn)
}

func TestTurn_LandLimitFromBattlefield(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.Exploration())
	put(g.Hand, 2, cardtest.Forest())
	put(g.Hand, 3, cardtest.Forest())
	put(g.Hand, 4, cardtest.Forest())

	turn := newTurnState(g, 1)
	turn.untap()
	assert.Equal(t, 2, turn.landLimit)

	require.NoError(t, turn.main())
	assert.Equal(t, 2, turn.end().LandsPlayed)
	assert.Equal(t, 1, g.Hand.Len())
}

func TestTurn_EntersLandDropLastsOneTurn(t *testing.T) {
	cost := mana.MustParseCost("{G}")
	herald := &card.Definition{
		Name:      "Grove Herald",
		ManaValue: 1,
		Cost:      &cost,
		TypeLine:  "Creature",
		Types:     card.TypeCreature,
		Abilities: []card.Ability{{
			Trigger:      card.TriggerCast,
			Cost:         card.NoCost{},
			Effect:       card.LandLimitIncrease{N: 1},
			Availability: 1,
		}},
	}
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.Forest())
	put(g.Hand, 2, herald)

	turn := newTurnState(g, 1)
	turn.untap()
	require.NoError(t, turn.upkeep())
	require.NoError(t, turn.playCard(g.Hand.Cards()[0]))
	assert.Equal(t, 2, turn.landLimit)

	next := newTurnState(g, 2)
	next.untap()
	assert.Equal(t, 1, next.landLimit)
}

func TestTurn_DrawOutOfCards(t *testing.T) {
	g := newTestGame(t)
	put(g.Library, 1, cardtest.Forest())
	put(g.Library, 2, cardtest.Forest())

	turn := newTurnState(g, 1)
	turn.draw(5)

	assert.Equal(t, 2, turn.end().CardsDrawn)
	assert.True(t, g.Stats().OutOfCards)
}

func TestTurn_UnplayableHand(t *testing.T) {
	g := newTestGame(t)
	put(g.Hand, 1, cardtest.Dragon())
	put(g.Hand, 2, cardtest.Elk())
	put(g.Battlefield, 3, cardtest.Forest())

	turn := newTurnState(g, 3)
	require.NoError(t, turn.upkeep())
	require.NoError(t, turn.main())

	stats := turn.end()
	assert.Zero(t, stats.Actions)
	assert.Zero(t, stats.CardsPlayed)
	assert.Equal(t, 2, stats.CardsInHand)
	assert.Equal(t, 1, stats.ManaAvailable)
	assert.Zero(t, stats.ManaSpent)
}

func TestTurn_PlaysLandThenSpell(t *testing.T) {
	g := newTestGame(t)
	put(g.Battlefield, 1, cardtest.Forest())
	put(g.Battlefield, 2, cardtest.Forest())
	put(g.Hand, 3, cardtest.Forest())
	put(g.Hand, 4, cardtest.Elk())

	turn := newTurnState(g, 3)
	require.NoError(t, turn.upkeep())
	require.NoError(t, turn.main())

	stats := turn.end()
	assert.Equal(t, 2, stats.Actions)
	assert.Equal(t, 1, stats.LandsPlayed)
	assert.Equal(t, 1, stats.CardsPlayed)
	assert.Equal(t, 3, stats.ManaAvailable)
	assert.Equal(t, 3, stats.ManaSpent)
	assert.Contains(t, names(g.Battlefield.Cards()), "Just an Elk")
}

func TestTurn_PrefersRampOverBiggestSpell(t *testing.T) {
	g := newTestGame(t)
	for i := 1; i <= 3; i++ {
		put(g.Battlefield, i, cardtest.Forest())
	}
	put(g.Hand, 4, cardtest.Elk())
	put(g.Hand, 5, cardtest.SolRing())

	turn := newTurnState(g, 3)
	require.NoError(t, turn.upkeep())

	acted, err := turn.act()
	require.NoError(t, err)
	require.True(t, acted)
	assert.Contains(t, names(g.Battlefield.Cards()), "Sol Ring")
	// Sol Ring pays for itself right away.
	assert.Equal(t, 5, turn.pool.Value())

	require.NoError(t, turn.main())
	assert.Contains(t, names(g.Battlefield.Cards()), "Just an Elk")
	assert.Equal(t, 4, turn.spent.Value())
}

func TestTurn_Commander(t *testing.T) {
	g := newTestGame(t)
	put(g.Command, 1, cardtest.Dragon())
	for i := 2; i <= 6; i++ {
		put(g.Battlefield, i, cardtest.Mountain())
	}
	put(g.Hand, 7, cardtest.Mountain())

	turn := newTurnState(g, 6)
	require.NoError(t, turn.upkeep())
	require.NoError(t, turn.main())

	assert.Equal(t, 6, g.Stats().CommanderTurn)
	assert.Zero(t, g.Command.Len())
	assert.Equal(t, 1, turn.end().CardsPlayed)
	assert.Equal(t, 6, turn.spent.Value())
}

type unknownEffect struct{ card.Effect }

func TestTurn_UnknownEffect(t *testing.T) {
	g := newTestGame(t)
	c := put(g.Battlefield, 1, cardtest.Elk())

	turn := newTurnState(g, 1)
	err := turn.resolve(c, unknownEffect{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}
