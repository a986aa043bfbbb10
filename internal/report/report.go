// Package report aggregates game statistics into per-turn averages.
package report

import (
	"sort"

	"github.com/magefree/decksim/internal/game"
	"github.com/magefree/decksim/internal/simulation"
)

// TurnSummary holds the averages of one turn over all games.
type TurnSummary struct {
	Turn          int     `json:"turn"`
	CardsDrawn    float64 `json:"cards_drawn"`
	CardsPlayed   float64 `json:"cards_played"`
	CardsInHand   float64 `json:"cards_in_hand"`
	LandsPlayed   float64 `json:"lands_played"`
	LandsCheated  float64 `json:"lands_cheated"`
	ManaAvailable float64 `json:"mana_available"`
	ManaSpent     float64 `json:"mana_spent"`
	// ManaRatio is spent over available mana, zero when none was available.
	ManaRatio float64 `json:"mana_ratio"`
	Actions   float64 `json:"actions"`
	// CommanderPlayed counts the games where the commander arrived this
	// turn.
	CommanderPlayed        int     `json:"commander_played"`
	CommanderPlayedPercent float64 `json:"commander_played_percent"`
}

// Summary is the aggregate of a batch.
type Summary struct {
	BatchID string `json:"batch_id,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	Games   int    `json:"games"`
	Turns   int    `json:"turns"`

	CommanderAverageTurn      float64 `json:"commander_average_turn"`
	CommanderNotPlayed        int     `json:"commander_not_played"`
	CommanderNotPlayedPercent float64 `json:"commander_not_played_percent"`

	CardsPerTurn      float64 `json:"cards_per_turn"`
	OutOfCards        int     `json:"out_of_cards"`
	OutOfCardsPercent float64 `json:"out_of_cards_percent"`
	// RampPerTurn is the mana available on the last turn spread over all
	// turns.
	RampPerTurn     float64 `json:"ramp_per_turn"`
	MulliganAverage float64 `json:"mulligan_average"`

	PerTurn []TurnSummary `json:"per_turn"`
	Cards   []CardSummary `json:"cards,omitempty"`
}

// CardSummary tells how often and how early a card got played.
type CardSummary struct {
	Name          string  `json:"name"`
	GamesPlayed   int     `json:"games_played"`
	PlayedPercent float64 `json:"played_percent"`
	// AverageTurn is the average first turn the card was played on, over
	// the games it was played in.
	AverageTurn float64 `json:"average_turn"`
}

// ForBatch summarizes a batch and tags the summary with its id and seed.
func ForBatch(b *simulation.Batch) Summary {
	s := Summarize(b.Results, b.Settings.Turns)
	s.BatchID = b.ID.String()
	s.Seed = b.Seed
	return s
}

// Summarize aggregates the statistics of games of the given number of turns.
func Summarize(results []game.Stats, turns int) Summary {
	s := Summary{
		Games:   len(results),
		Turns:   turns,
		PerTurn: make([]TurnSummary, turns),
	}
	for i := range s.PerTurn {
		s.PerTurn[i].Turn = i + 1
	}
	if len(results) == 0 {
		return s
	}

	var (
		commanderTurns, mulligans, lastTurnMana int
		cardsDrawn                              int
	)
	cards := make(map[string]*CardSummary)
	for _, stats := range results {
		for name, turn := range stats.FirstPlayed {
			c, ok := cards[name]
			if !ok {
				c = &CardSummary{Name: name}
				cards[name] = c
			}
			c.GamesPlayed++
			c.AverageTurn += float64(turn)
		}
		mulligans += stats.MulliganCount
		if stats.OutOfCards {
			s.OutOfCards++
		}
		if stats.CommanderTurn == 0 {
			s.CommanderNotPlayed++
		} else {
			commanderTurns += stats.CommanderTurn
			if stats.CommanderTurn <= turns {
				s.PerTurn[stats.CommanderTurn-1].CommanderPlayed++
			}
		}
		for i, turn := range stats.Turns {
			if i >= turns {
				break
			}
			ts := &s.PerTurn[i]
			ts.CardsDrawn += float64(turn.CardsDrawn)
			ts.CardsPlayed += float64(turn.CardsPlayed)
			ts.CardsInHand += float64(turn.CardsInHand)
			ts.LandsPlayed += float64(turn.LandsPlayed)
			ts.LandsCheated += float64(turn.LandsCheated)
			ts.ManaAvailable += float64(turn.ManaAvailable)
			ts.ManaSpent += float64(turn.ManaSpent)
			ts.Actions += float64(turn.Actions)
			cardsDrawn += turn.CardsDrawn
		}
		if turns > 0 && len(stats.Turns) >= turns {
			lastTurnMana += stats.Turns[turns-1].ManaAvailable
		}
	}

	games := float64(len(results))
	for i := range s.PerTurn {
		ts := &s.PerTurn[i]
		ts.CardsDrawn /= games
		ts.CardsPlayed /= games
		ts.CardsInHand /= games
		ts.LandsPlayed /= games
		ts.LandsCheated /= games
		ts.ManaAvailable /= games
		ts.ManaSpent /= games
		ts.Actions /= games
		if ts.ManaAvailable > 0 {
			ts.ManaRatio = ts.ManaSpent / ts.ManaAvailable
		}
		ts.CommanderPlayedPercent = percent(ts.CommanderPlayed, len(results))
	}

	if played := len(results) - s.CommanderNotPlayed; played > 0 {
		s.CommanderAverageTurn = float64(commanderTurns) / float64(played)
	}
	s.CommanderNotPlayedPercent = percent(s.CommanderNotPlayed, len(results))
	s.OutOfCardsPercent = percent(s.OutOfCards, len(results))
	s.MulliganAverage = float64(mulligans) / games
	if turns > 0 {
		s.CardsPerTurn = float64(cardsDrawn) / (games * float64(turns))
		s.RampPerTurn = float64(lastTurnMana) / (games * float64(turns))
	}
	s.Cards = summarizeCards(cards, len(results))
	return s
}

// summarizeCards orders cards by how often they were played, then by how
// early.
func summarizeCards(cards map[string]*CardSummary, games int) []CardSummary {
	if len(cards) == 0 {
		return nil
	}
	result := make([]CardSummary, 0, len(cards))
	for _, c := range cards {
		c.AverageTurn /= float64(c.GamesPlayed)
		c.PlayedPercent = percent(c.GamesPlayed, games)
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed > b.GamesPlayed
		}
		if a.AverageTurn != b.AverageTurn {
			return a.AverageTurn < b.AverageTurn
		}
		return a.Name < b.Name
	})
	return result
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
