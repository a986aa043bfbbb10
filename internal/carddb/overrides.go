package carddb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
)

// Overrides replaces what the oracle parser found for specific cards. The
// file looks like:
//
//	cards:
//	  elemental bond:
//	    abilities:
//	      - trigger: upkeep
//	        draw: [0, 0, 1, 1, 2]
//	  commander's sphere:
//	    abilities:
//	      - trigger: activated
//	        cost: "{T}"
//	        add: "{B/U/G/R/W}"
//	      - trigger: activated
//	        cost: sacrifice
//	        draw: [1]
//	        availability: 0.2
//	  exploration:
//	    abilities:
//	      - trigger: static
//	        lands: 1
type Overrides struct {
	Cards map[string]Override `yaml:"cards"`
}

// Override is the replacement data of one card.
type Override struct {
	EntersTapped *bool         `yaml:"enters_tapped"`
	Abilities    []AbilitySpec `yaml:"abilities"`

	abilities []card.Ability
}

// AbilitySpec describes one ability. Exactly one of Add, Draw, Fetch and
// Lands must be set.
type AbilitySpec struct {
	Trigger      string     `yaml:"trigger"`
	Cost         string     `yaml:"cost"`
	Add          string     `yaml:"add"`
	Draw         []int      `yaml:"draw"`
	Fetch        *FetchSpec `yaml:"fetch"`
	Lands        int        `yaml:"lands"`
	Availability *float64   `yaml:"availability"`
}

// FetchSpec lists land types to search for.
type FetchSpec struct {
	Hand        []string `yaml:"hand"`
	Battlefield []string `yaml:"battlefield"`
}

// LoadOverrides reads an override file. An empty path or a missing file
// yields no overrides.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Overrides{}, nil
	}
	if err != nil {
		return Overrides{}, fmt.Errorf("read overrides: %w", err)
	}
	overrides, err := ParseOverrides(data)
	if err != nil {
		return Overrides{}, fmt.Errorf("%s: %w", path, err)
	}
	return overrides, nil
}

// ParseOverrides decodes and validates override YAML.
func ParseOverrides(data []byte) (Overrides, error) {
	var raw Overrides
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Overrides{}, fmt.Errorf("decode overrides: %w", err)
	}
	overrides := Overrides{Cards: make(map[string]Override, len(raw.Cards))}
	for name, override := range raw.Cards {
		for i, spec := range override.Abilities {
			ability, err := spec.build()
			if err != nil {
				return Overrides{}, fmt.Errorf("%s: ability %d: %w", name, i+1, err)
			}
			override.abilities = append(override.abilities, ability)
		}
		overrides.Cards[card.Key(name)] = override
	}
	return overrides, nil
}

// Len returns the number of overridden cards.
func (o Overrides) Len() int {
	return len(o.Cards)
}

func (o Overrides) lookup(name string) (Override, bool) {
	override, ok := o.Cards[card.Key(name)]
	return override, ok
}

func (o Override) apply(def *card.Definition) error {
	if o.EntersTapped != nil {
		def.EntersTapped = *o.EntersTapped
	}
	if o.Abilities == nil {
		return nil
	}
	if len(o.abilities) != len(o.Abilities) {
		return fmt.Errorf("override was not validated")
	}
	def.Abilities = append([]card.Ability(nil), o.abilities...)
	def.Produces = def.CalculateProducedMana()
	return nil
}

var triggersByName = map[string]card.Trigger{
	"":          card.TriggerCast,
	"cast":      card.TriggerCast,
	"activated": card.TriggerActivated,
	"upkeep":    card.TriggerUpkeep,
	"static":    card.TriggerStatic,
}

func (s AbilitySpec) build() (card.Ability, error) {
	trigger, ok := triggersByName[strings.ToLower(s.Trigger)]
	if !ok {
		return card.Ability{}, fmt.Errorf("unknown trigger %q", s.Trigger)
	}
	cost, err := parseAbilityCost(s.Cost)
	if err != nil {
		return card.Ability{}, err
	}

	var effects []card.Effect
	if s.Add != "" {
		pool, err := mana.ParseCost(s.Add)
		if err != nil {
			return card.Ability{}, err
		}
		effects = append(effects, card.ProduceMana{Pool: pool})
	}
	if len(s.Draw) > 0 {
		effects = append(effects, card.Draw{Distribution: append([]int(nil), s.Draw...)})
	}
	if s.Fetch != nil {
		effects = append(effects, card.FetchLand{ToHand: s.Fetch.Hand, ToBattlefield: s.Fetch.Battlefield})
	}
	if s.Lands > 0 {
		effects = append(effects, card.LandLimitIncrease{N: s.Lands})
	}
	if len(effects) != 1 {
		return card.Ability{}, fmt.Errorf("need exactly one effect, got %d", len(effects))
	}

	availability := 1.0
	if s.Availability != nil {
		availability = *s.Availability
	}
	if availability < 0 || availability > 1 {
		return card.Ability{}, fmt.Errorf("availability %v out of range", availability)
	}
	return card.Ability{
		Trigger:      trigger,
		Cost:         cost,
		Effect:       effects[0],
		Availability: availability,
	}, nil
}

// parseAbilityCost reads costs written like "{2}, {T}, sacrifice".
func parseAbilityCost(text string) (card.Cost, error) {
	var (
		taps, sacrifices bool
		pool             mana.Pool
		hasMana          bool
	)
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "", "none":
		case "{t}", "tap":
			taps = true
		case "sacrifice":
			sacrifices = true
		default:
			parsed, err := mana.ParseCost(part)
			if err != nil {
				return nil, err
			}
			pool.AddPool(parsed)
			hasMana = true
		}
	}

	switch {
	case hasMana && taps && sacrifices:
		return card.TapManaSacrificeCost{Pool: pool}, nil
	case hasMana && taps:
		return card.TapManaCost{Pool: pool}, nil
	case hasMana && sacrifices:
		return nil, fmt.Errorf("cost %q: mana and sacrifice without tapping is not supported", text)
	case hasMana:
		return card.ManaCost{Pool: pool}, nil
	case taps && sacrifices:
		return card.TapSacrificeCost{}, nil
	case taps:
		return card.TapCost{}, nil
	case sacrifices:
		return card.SacrificeCost{}, nil
	}
	return card.NoCost{}, nil
}
