// Package oracle turns card rules text into abilities the simulator
// understands. Anything it doesn't recognize is ignored.
package oracle

import (
	"fmt"
	"strings"

	"github.com/magefree/decksim/internal/game/card"
)

// sacrificeDrawAvailability is how often a mana producer that can be
// sacrificed for cards is actually cashed in.
const sacrificeDrawAvailability = 0.2

// Context is the text of one card.
type Context struct {
	Text     string
	CardName string
	Types    card.Types
}

func (ctx Context) lines() []string {
	var lines []string
	for _, line := range strings.Split(ctx.Text, "\n") {
		line = strings.TrimSpace(line)
		// Reminder text, like "({T}: Add {G}.)" on basic lands.
		if strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")") {
			line = strings.TrimSpace(line[1 : len(line)-1])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isSelf reports whether a reference in the text points to the card itself.
func (ctx Context) isSelf(ref string) bool {
	ref = strings.TrimSpace(ref)
	return strings.EqualFold(ref, ctx.CardName) || strings.HasPrefix(strings.ToLower(ref), "this ")
}

// Parse extracts the abilities of a card.
func Parse(ctx Context) ([]card.Ability, error) {
	var abilities []card.Ability
	producesMana, sacrificesForCards := false, false

	for _, line := range ctx.lines() {
		if lhs, rhs, ok := strings.Cut(line, ":"); ok {
			ability, found, err := parseActivated(ctx, strings.TrimSpace(lhs), strings.TrimSpace(rhs))
			if err != nil {
				return nil, fmt.Errorf("%s: %q: %w", ctx.CardName, line, err)
			}
			if !found {
				continue
			}
			_, isMana := ability.Effect.(card.ProduceMana)
			_, isDraw := ability.Effect.(card.Draw)
			producesMana = producesMana || isMana
			sacrificesForCards = sacrificesForCards || (isDraw && ability.Cost.Sacrifices())
			abilities = append(abilities, ability)
			continue
		}

		parsed, err := parseStatic(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", ctx.CardName, line, err)
		}
		abilities = append(abilities, parsed...)
	}

	if producesMana && sacrificesForCards {
		for i := range abilities {
			if _, ok := abilities[i].Effect.(card.Draw); ok && abilities[i].Trigger == card.TriggerActivated {
				abilities[i].Availability = sacrificeDrawAvailability
			}
		}
	}
	return abilities, nil
}

func parseActivated(ctx Context, costText, effectText string) (card.Ability, bool, error) {
	cost, err := parseCost(ctx, costText)
	if err != nil || cost == nil {
		return card.Ability{}, false, err
	}
	effect, err := parseEffect(effectText)
	if err != nil || effect == nil {
		return card.Ability{}, false, err
	}
	return card.Ability{
		Trigger:      card.TriggerActivated,
		Cost:         cost,
		Effect:       effect,
		Availability: 1,
	}, true, nil
}

// parseStatic handles lines without an activation cost: spell text,
// upkeep and enters-the-battlefield triggers, and static abilities.
func parseStatic(ctx Context, line string) ([]card.Ability, error) {
	trigger := card.TriggerCast
	text := line
	if m := upkeepPattern.FindStringSubmatch(line); m != nil {
		trigger = card.TriggerUpkeep
		text = m[1]
	} else if m := entersPattern.FindStringSubmatch(line); m != nil && ctx.isSelf(m[1]) {
		text = m[2]
	} else if !ctx.Types.Has(card.TypeInstant) && !ctx.Types.Has(card.TypeSorcery) {
		// Permanents only contribute static abilities here.
		if n, ok := additionalLands(line); ok {
			return []card.Ability{{
				Trigger:      card.TriggerStatic,
				Cost:         card.NoCost{},
				Effect:       card.LandLimitIncrease{N: n},
				Availability: 1,
			}}, nil
		}
		return nil, nil
	}

	effects, err := spellEffects(text)
	if err != nil {
		return nil, err
	}
	abilities := make([]card.Ability, len(effects))
	for i, effect := range effects {
		abilities[i] = card.Ability{
			Trigger:      trigger,
			Cost:         card.NoCost{},
			Effect:       effect,
			Availability: 1,
		}
	}
	return abilities, nil
}
