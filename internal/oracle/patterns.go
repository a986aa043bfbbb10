package oracle

import (
	"regexp"
	"strings"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
)

var (
	tapPattern              = regexp.MustCompile(`^\{T\}$`)
	tapManaPattern          = regexp.MustCompile(`^(\{[^T]*\}), \{T\}$`)
	sacrificePattern        = regexp.MustCompile(`^Sacrifice (.+)$`)
	tapSacrificePattern     = regexp.MustCompile(`^\{T\}, Sacrifice (.+)$`)
	tapManaSacrificePattern = regexp.MustCompile(`^(\{.+\}), \{T\}, Sacrifice (.+)$`)
	addManaPattern          = regexp.MustCompile(`^Add ((\{\w\})+)\.`)
	addManaChoicePattern    = regexp.MustCompile(`^Add \{\w\}(, \{\w\})*,? or \{\w\}\.`)
	addAnyColorPattern      = regexp.MustCompile(`^Add one mana of any color`)
	addTwoAnyColorPattern   = regexp.MustCompile(`^Add two mana in any combination of colors`)
	symbolPattern           = regexp.MustCompile(`\{(\w)\}`)
	drawPattern             = regexp.MustCompile(`(?i)\bdraws? (a|one|two|three|four) cards?\b`)
	searchPattern           = regexp.MustCompile(`(?i)search your library for (a|an|one|up to one|up to two|up to three|two|three) (.+?) cards?\b`)
	splitToHandPattern      = regexp.MustCompile(`(?i)put one onto the battlefield tapped and the other into your hand`)
	additionalLandPattern   = regexp.MustCompile(`(?i)play (an|one|two|three) additional lands?`)
	upkeepPattern           = regexp.MustCompile(`^At the beginning of your upkeep, (.+)$`)
	entersPattern           = regexp.MustCompile(`^When (.+?) enters(?: the battlefield)?, (.+)$`)
	returnLandPattern       = regexp.MustCompile(`^When (.+?) enters(?: the battlefield)?, return a land you control to its owner's hand\.$`)
	entersTappedPattern     = regexp.MustCompile(`^(.+?) enters(?: the battlefield)? tapped\.$`)
)

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "up to one": 1,
	"two": 2, "up to two": 2,
	"three": 3, "up to three": 3,
	"four": 4,
}

func parseCost(ctx Context, text string) (card.Cost, error) {
	switch {
	case tapPattern.MatchString(text):
		return card.TapCost{}, nil
	case tapSacrificePattern.MatchString(text):
		m := tapSacrificePattern.FindStringSubmatch(text)
		if !ctx.isSelf(m[1]) {
			return nil, nil
		}
		return card.TapSacrificeCost{}, nil
	case tapManaSacrificePattern.MatchString(text):
		m := tapManaSacrificePattern.FindStringSubmatch(text)
		if !ctx.isSelf(m[2]) {
			return nil, nil
		}
		pool, err := mana.ParseCost(m[1])
		if err != nil {
			return nil, err
		}
		return card.TapManaSacrificeCost{Pool: pool}, nil
	case tapManaPattern.MatchString(text):
		pool, err := mana.ParseCost(tapManaPattern.FindStringSubmatch(text)[1])
		if err != nil {
			return nil, err
		}
		return card.TapManaCost{Pool: pool}, nil
	case sacrificePattern.MatchString(text):
		if !ctx.isSelf(sacrificePattern.FindStringSubmatch(text)[1]) {
			return nil, nil
		}
		return card.SacrificeCost{}, nil
	}
	return nil, nil
}

// parseEffect recognizes the effect of an activated ability.
func parseEffect(text string) (card.Effect, error) {
	switch {
	case addManaPattern.MatchString(text):
		pool, err := mana.ParseCost(addManaPattern.FindStringSubmatch(text)[1])
		if err != nil {
			return nil, err
		}
		return card.ProduceMana{Pool: pool}, nil
	case addManaChoicePattern.MatchString(text):
		return card.ProduceMana{Pool: mana.NewPool(choiceOf(addManaChoicePattern.FindString(text)))}, nil
	case addAnyColorPattern.MatchString(text):
		return card.ProduceMana{Pool: mana.NewPool(mana.Any)}, nil
	case addTwoAnyColorPattern.MatchString(text):
		return card.ProduceMana{Pool: mana.NewPool(mana.Any, mana.Any)}, nil
	}
	if m := drawPattern.FindStringSubmatch(text); m != nil && strings.HasPrefix(strings.ToLower(text), "draw") {
		return card.Draw{Distribution: []int{numberWords[strings.ToLower(m[1])]}}, nil
	}
	if fetch, ok := parseSearch(text); ok {
		return fetch, nil
	}
	return nil, nil
}

// choiceOf builds the unit for "Add {R} or {W}." style text. Colorless
// choices are dropped; with no colors left the unit is colorless.
func choiceOf(text string) mana.Mana {
	var colors []mana.Color
	for _, m := range symbolPattern.FindAllStringSubmatch(text, -1) {
		if c, ok := mana.ColorFromSymbol(m[1]); ok {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		return mana.Colorless
	}
	return mana.Hybrid(colors...)
}

// spellEffects recognizes the effects of spell text or of a triggered
// ability.
func spellEffects(text string) ([]card.Effect, error) {
	var effects []card.Effect
	if strings.HasPrefix(text, "Add ") {
		effect, err := parseEffect(text)
		if err != nil {
			return nil, err
		}
		if effect != nil {
			effects = append(effects, effect)
		}
	}
	if fetch, ok := parseSearch(text); ok {
		effects = append(effects, fetch)
	}
	if m := drawPattern.FindStringSubmatch(text); m != nil {
		effects = append(effects, card.Draw{Distribution: []int{numberWords[strings.ToLower(m[1])]}})
	}
	if n, ok := additionalLands(text); ok {
		effects = append(effects, card.LandLimitIncrease{N: n})
	}
	return effects, nil
}

// parseSearch recognizes land searches like "Search your library for a
// basic land card, put it onto the battlefield tapped".
func parseSearch(text string) (card.FetchLand, bool) {
	m := searchPattern.FindStringSubmatch(text)
	if m == nil {
		return card.FetchLand{}, false
	}
	subject := landType(m[2])
	if subject == "" {
		return card.FetchLand{}, false
	}
	count := numberWords[strings.ToLower(m[1])]

	var fetch card.FetchLand
	lower := strings.ToLower(text)
	switch {
	case splitToHandPattern.MatchString(text):
		fetch.ToBattlefield = []string{subject}
		fetch.ToHand = repeat(subject, count-1)
	case strings.Contains(lower, "onto the battlefield"):
		fetch.ToBattlefield = repeat(subject, count)
	case strings.Contains(lower, "into your hand"):
		fetch.ToHand = repeat(subject, count)
	default:
		return card.FetchLand{}, false
	}
	return fetch, true
}

var basicTypes = []string{"plains", "island", "swamp", "mountain", "forest"}

// landType turns "basic land" or "Plains, Island, or Swamp" into the type
// query understood by the library, or "" for anything that isn't a land.
func landType(subject string) string {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if strings.Contains(subject, "land") {
		return subject
	}
	var found []string
	for _, part := range strings.FieldsFunc(subject, func(r rune) bool { return r == ',' || r == ' ' }) {
		for _, basic := range basicTypes {
			if part == basic {
				found = append(found, basic)
			}
		}
	}
	return strings.Join(found, "/")
}

func additionalLands(text string) (int, bool) {
	m := additionalLandPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return numberWords[strings.ToLower(m[1])], true
}

func repeat(s string, n int) []string {
	result := make([]string, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, s)
	}
	return result
}

// ParseAdditionalCost finds obligations when the card enters, like the
// bounce lands returning a land to hand.
func ParseAdditionalCost(ctx Context) card.AdditionalCost {
	for _, line := range ctx.lines() {
		if m := returnLandPattern.FindStringSubmatch(line); m != nil && ctx.isSelf(m[1]) {
			return card.ReturnLandToHand
		}
	}
	return card.NoAdditionalCost
}

// EntersTapped reports whether the card always enters the battlefield
// tapped. Conditional clauses ("unless you control...") count as untapped.
func EntersTapped(ctx Context) bool {
	for _, line := range ctx.lines() {
		if m := entersTappedPattern.FindStringSubmatch(line); m != nil && ctx.isSelf(m[1]) {
			return true
		}
	}
	return false
}
