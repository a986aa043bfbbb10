package carddb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
)

const overridesYAML = `
cards:
  Elemental Bond:
    abilities:
      - trigger: upkeep
        draw: [0, 0, 1, 1, 2]
  commander's sphere:
    enters_tapped: false
    abilities:
      - trigger: activated
        cost: "{T}"
        add: "{B/U/G/R/W}"
      - trigger: activated
        cost: sacrifice
        draw: [1]
        availability: 0.2
  hedron archive:
    abilities:
      - trigger: activated
        cost: "{2}, {T}, sacrifice"
        draw: [2]
  evolving wilds:
    enters_tapped: true
  azusa, lost but seeking:
    abilities:
      - trigger: static
        lands: 2
`

func TestParseOverrides(t *testing.T) {
	overrides, err := ParseOverrides([]byte(overridesYAML))
	require.NoError(t, err)
	assert.Equal(t, 5, overrides.Len())

	bond, ok := overrides.lookup("elemental bond")
	require.True(t, ok)
	require.Len(t, bond.abilities, 1)
	assert.Equal(t, card.TriggerUpkeep, bond.abilities[0].Trigger)
	assert.Equal(t, card.NoCost{}, bond.abilities[0].Cost)
	assert.Equal(t, card.Draw{Distribution: []int{0, 0, 1, 1, 2}}, bond.abilities[0].Effect)

	archive, ok := overrides.lookup("Hedron Archive")
	require.True(t, ok)
	assert.Equal(t, card.TapManaSacrificeCost{Pool: mana.NewPool(mana.Colorless, mana.Colorless)}, archive.abilities[0].Cost)

	azusa, ok := overrides.lookup("azusa, lost but seeking")
	require.True(t, ok)
	assert.Equal(t, card.TriggerStatic, azusa.abilities[0].Trigger)
	assert.Equal(t, card.LandLimitIncrease{N: 2}, azusa.abilities[0].Effect)
}

func TestOverride_Apply(t *testing.T) {
	overrides, err := ParseOverrides([]byte(overridesYAML))
	require.NoError(t, err)

	def := &card.Definition{Name: "Commander's Sphere", Types: card.TypeArtifact, EntersTapped: true}
	sphere, _ := overrides.lookup(def.Name)
	require.NoError(t, sphere.apply(def))

	assert.False(t, def.EntersTapped)
	require.Len(t, def.Abilities, 2)
	assert.Equal(t, 0.2, def.Abilities[1].Availability)
	require.NotNil(t, def.Produces)
	assert.Equal(t, mana.Any, *def.Produces)

	wilds := &card.Definition{Name: "Evolving Wilds", Abilities: []card.Ability{{Effect: card.Draw{}}}}
	override, _ := overrides.lookup(wilds.Name)
	require.NoError(t, override.apply(wilds))
	assert.True(t, wilds.EntersTapped)
	assert.Len(t, wilds.Abilities, 1, "abilities are kept when the override has none")
}

func TestParseOverrides_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown trigger": "cards:\n  x:\n    abilities:\n      - trigger: combat\n        draw: [1]\n",
		"no effect":       "cards:\n  x:\n    abilities:\n      - trigger: cast\n",
		"two effects":     "cards:\n  x:\n    abilities:\n      - draw: [1]\n        lands: 1\n",
		"bad mana":        "cards:\n  x:\n    abilities:\n      - add: \"{Q}\"\n",
		"mana sacrifice":  "cards:\n  x:\n    abilities:\n      - cost: \"{1}, sacrifice\"\n        draw: [1]\n",
		"availability":    "cards:\n  x:\n    abilities:\n      - draw: [1]\n        availability: 2\n",
		"not yaml":        "cards: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOverrides([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestParseAbilityCost(t *testing.T) {
	cases := map[string]card.Cost{
		"":                    card.NoCost{},
		"none":                card.NoCost{},
		"{T}":                 card.TapCost{},
		"sacrifice":           card.SacrificeCost{},
		"{T}, sacrifice":      card.TapSacrificeCost{},
		"{1}":                 card.ManaCost{Pool: mana.NewPool(mana.Colorless)},
		"{1}, {T}":            card.TapManaCost{Pool: mana.NewPool(mana.Colorless)},
		"{2}, tap, sacrifice": card.TapManaSacrificeCost{Pool: mana.NewPool(mana.Colorless, mana.Colorless)},
	}
	for text, want := range cases {
		got, err := parseAbilityCost(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}
}

func TestLoadOverrides(t *testing.T) {
	overrides, err := LoadOverrides("")
	require.NoError(t, err)
	assert.Zero(t, overrides.Len())

	overrides, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Zero(t, overrides.Len())

	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overridesYAML), 0o644))
	overrides, err = LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, 4, overrides.Len())
}
