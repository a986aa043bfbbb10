package carddb

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game"
	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/mana"
	"github.com/magefree/decksim/internal/oracle"
)

// scryfallCard is the subset of a Scryfall card object the simulator uses.
type scryfallCard struct {
	Object       string         `json:"object"`
	Name         string         `json:"name"`
	CMC          float64        `json:"cmc"`
	ManaCost     string         `json:"mana_cost"`
	TypeLine     string         `json:"type_line"`
	OracleText   string         `json:"oracle_text"`
	ProducedMana []string       `json:"produced_mana"`
	CardFaces    []scryfallFace `json:"card_faces"`
	Details      string         `json:"details"`
}

type scryfallFace struct {
	Name       string `json:"name"`
	ManaCost   string `json:"mana_cost"`
	TypeLine   string `json:"type_line"`
	OracleText string `json:"oracle_text"`
}

// front returns the fields describing the side of the card that is played.
// Multi-faced cards describe each face separately; the first face wins.
func (c scryfallCard) front() scryfallFace {
	face := scryfallFace{
		Name:       c.Name,
		ManaCost:   c.ManaCost,
		TypeLine:   c.TypeLine,
		OracleText: c.OracleText,
	}
	if len(c.CardFaces) == 0 {
		return face
	}
	first := c.CardFaces[0]
	face.Name = first.Name
	if first.ManaCost != "" {
		face.ManaCost = first.ManaCost
	}
	if first.TypeLine != "" {
		face.TypeLine = first.TypeLine
	}
	if first.OracleText != "" {
		face.OracleText = first.OracleText
	}
	return face
}

// Convert turns a Scryfall card object into a definition. Rules text the
// oracle parser rejects is logged and replaced by what produced_mana says
// about lands.
func Convert(data []byte, logger *zap.Logger) (*card.Definition, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var raw scryfallCard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode card: %w", err)
	}
	if raw.Object == "error" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, raw.Details)
	}
	face := raw.front()
	if face.Name == "" {
		return nil, fmt.Errorf("decode card: missing name")
	}

	def := &card.Definition{
		Name:      face.Name,
		ManaValue: int(raw.CMC),
		TypeLine:  face.TypeLine,
		Types:     card.ParseTypes(face.TypeLine),
	}
	if face.ManaCost != "" {
		cost, err := mana.ParseCost(face.ManaCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", game.ErrSetup, face.Name, err)
		}
		def.Cost = &cost
	}

	ctx := oracle.Context{Text: face.OracleText, CardName: face.Name, Types: def.Types}
	abilities, err := oracle.Parse(ctx)
	if err != nil {
		logger.Warn("unsupported rules text", zap.String("card", face.Name), zap.Error(err))
		abilities = nil
	}
	def.Abilities = abilities
	def.EntersTapped = oracle.EntersTapped(ctx)
	def.AdditionalCost = oracle.ParseAdditionalCost(ctx)

	def.Produces = def.CalculateProducedMana()
	if def.Produces == nil && def.Is(card.TypeLand) {
		if produced, ok := producedMana(raw.ProducedMana); ok {
			def.Abilities = append(def.Abilities, card.Ability{
				Trigger:      card.TriggerActivated,
				Cost:         card.TapCost{},
				Effect:       card.ProduceMana{Pool: mana.NewPool(produced)},
				Availability: 1,
			})
			def.Produces = &produced
		}
	}
	return def, nil
}

// producedMana folds Scryfall's produced_mana symbols into one unit.
func producedMana(symbols []string) (mana.Mana, bool) {
	if len(symbols) == 0 {
		return mana.Colorless, false
	}
	var colors []mana.Color
	for _, s := range symbols {
		if c, ok := mana.ColorFromSymbol(s); ok {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		return mana.Colorless, true
	}
	return mana.Hybrid(colors...), true
}
