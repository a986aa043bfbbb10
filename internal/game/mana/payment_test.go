package mana

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_CanPayFor(t *testing.T) {
	oneOfEachColor := NewPool(Black, Blue, Green, Red, White)

	assert.True(t, oneOfEachColor.CanPayFor(NewPool(Colorless, Colorless, Green)))
	assert.True(t, oneOfEachColor.CanPayFor(oneOfEachColor))
	assert.True(t, oneOfEachColor.CanPayFor(NewPool(Colorless, Black)))
	assert.True(t, oneOfEachColor.CanPayFor(NewPool(Colorless, Colorless, Red, White)))
	assert.True(t, oneOfEachColor.CanPayFor(NewPool(Colorless, Colorless, Colorless, Colorless, Colorless)))

	for _, m := range []Mana{Black, Blue, Green, Red, White} {
		assert.False(t, oneOfEachColor.CanPayFor(NewPool(m, m)), "double %s", m)
	}

	rakdosPool := NewPool(rakdos)
	assert.True(t, rakdosPool.CanPayFor(NewPool(Black)))
	assert.False(t, rakdosPool.CanPayFor(NewPool(Blue)))
	assert.False(t, rakdosPool.CanPayFor(NewPool(Green)))
	assert.True(t, rakdosPool.CanPayFor(NewPool(Red)))
	assert.False(t, rakdosPool.CanPayFor(NewPool(White)))
	assert.True(t, rakdosPool.CanPayFor(NewPool(Colorless)))

	twoOfEachColor := NewPool(Black, Blue, Green, Red, White, Black, Blue, Green, Red, White)
	freakyCost := NewPool(Green, Green, Red, Red, White, White, Blue, Colorless, Colorless, Blue)
	assert.True(t, twoOfEachColor.CanPayFor(freakyCost))
}

func TestPool_CanPayFor_FastReject(t *testing.T) {
	pool := NewPool(Any, Any)
	assert.False(t, pool.CanPayFor(NewPool(Colorless, Colorless, Colorless)))
}

func TestPool_CanPayFor_FiveColorCost(t *testing.T) {
	pool := NewPool(Colorless, Colorless, Colorless, Colorless, Black, Green, Red, White, Blue)
	cost := MustParseCost("{4}{B}{G}{R}{W}{U}")

	require.Equal(t, 9, pool.Value())
	require.Equal(t, 9, cost.Value())
	assert.True(t, pool.CanPayFor(cost))
}

func TestPool_CanPayFor_Wildcards(t *testing.T) {
	// Wildcards cover whatever colored pips same-color units couldn't.
	assert.True(t, NewPool(Any, Black).CanPayFor(NewPool(Black, Blue)))
	assert.False(t, NewPool(Any, Colorless).CanPayFor(NewPool(Black, Blue)))
	assert.True(t, NewPool(Any, Any, Colorless).CanPayFor(NewPool(Black, Blue, Colorless)))

	// A wildcard in a cost is just a generic requirement.
	assert.True(t, NewPool(Colorless).CanPayFor(NewPool(Any)))
	assert.False(t, NewPool(Colorless).CanPayFor(NewPool(Any, Any)))
}

func TestPool_CanPayFor_HybridEnumeration(t *testing.T) {
	pool := NewPool(rakdos, selesnya, Red, Green)

	// Only {B/R}->B and {G/W}->W leaves R and G for their own pips.
	assert.True(t, pool.CanPayFor(NewPool(Black, Red, Green, White)))
	assert.False(t, pool.CanPayFor(NewPool(Black, Black, Green, White)))
	assert.False(t, pool.CanPayFor(NewPool(Blue, Red, Green, White)))
}

func TestPool_CanPayFor_HybridCost(t *testing.T) {
	cost := MustParseCost("{1}{B/G}")

	assert.True(t, NewPool(Green, Colorless).CanPayFor(cost))
	assert.True(t, NewPool(Black, Black).CanPayFor(cost))
	assert.True(t, NewPool(Any, Colorless).CanPayFor(cost))
	assert.False(t, NewPool(Red, Colorless).CanPayFor(cost))
	assert.True(t, NewPool(selesnya, Red).CanPayFor(cost))
}

func TestPool_CanAlsoPayFor(t *testing.T) {
	pool := NewPool(Black, Black, Green)

	total, ok := pool.CanAlsoPayFor(NewPool(Black), NewPool(Green))
	require.True(t, ok)
	assert.Equal(t, 1, total.Black)
	assert.Equal(t, 1, total.Green)
	assert.Equal(t, 2, total.Value())

	_, ok = pool.CanAlsoPayFor(NewPool(Black), NewPool(Green, Green))
	assert.False(t, ok)

	_, ok = pool.CanAlsoPayFor(NewPool(Black, Black), NewPool(Colorless, Colorless))
	assert.False(t, ok)

	_, ok = pool.CanAlsoPayFor(Pool{}, Pool{})
	assert.True(t, ok)
}

func TestPool_CanAlsoPayFor_AgreesWithCanPayFor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		pool := randomPool(rng, 8)
		spent := randomPool(rng, 4)
		extra := randomPool(rng, 4)

		total, ok := pool.CanAlsoPayFor(spent, extra)
		if spent.Value()+extra.Value() > pool.Value() {
			require.False(t, ok, "pool %s spent %s extra %s", pool, spent, extra)
			continue
		}
		require.Equal(t, pool.CanPayFor(spent.Plus(extra)), ok, "pool %s spent %s extra %s", pool, spent, extra)
		if ok {
			require.Equal(t, spent.Value()+extra.Value(), total.Value())
		}
	}
}

func TestPool_CanPayFor_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	for i := 0; i < 500; i++ {
		pool := randomPool(rng, 7)
		cost := randomPool(rng, 6)
		if !pool.CanPayFor(cost) {
			continue
		}
		bigger := pool.Plus(randomPool(rng, 3))
		require.True(t, bigger.CanPayFor(cost), "pool %s pays %s but %s doesn't", pool, cost, bigger)
	}
}

// randomPool builds a pool of up to limit units with at most three hybrids.
func randomPool(rng *rand.Rand, limit int) Pool {
	var pool Pool
	n := rng.Intn(limit + 1)
	for i := 0; i < n; i++ {
		m := randomUnit(rng)
		if m.IsHybrid() && len(pool.Hybrid) >= 3 {
			m = Colorless
		}
		pool.Add(m)
	}
	return pool
}
