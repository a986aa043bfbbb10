package game

import (
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/magefree/decksim/internal/game/card"
	"github.com/magefree/decksim/internal/game/rules"
	"github.com/magefree/decksim/internal/game/watchers"
	"github.com/magefree/decksim/internal/game/zone"
)

const openingHandSize = 7

// MulliganType selects the opening hand policy.
type MulliganType int

const (
	// MulliganNone keeps the first seven cards.
	MulliganNone MulliganType = iota
	// MulliganThreeLands redraws until the hand holds at least three lands.
	MulliganThreeLands
)

var mulliganNames = map[MulliganType]string{
	MulliganNone:       "none",
	MulliganThreeLands: "three-lands",
}

func (m MulliganType) String() string {
	if name, ok := mulliganNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MULLIGAN_%d", int(m))
}

// ParseMulligan resolves a mulligan policy by name.
func ParseMulligan(name string) (MulliganType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m, n := range mulliganNames {
		if n == key {
			return m, nil
		}
	}
	return MulliganNone, setupError("unknown mulligan type %q", name)
}

// Settings controls a single game.
type Settings struct {
	Turns           int
	DrawOnFirstTurn bool
	Mulligan        MulliganType
}

// Validate checks the settings on their own.
func (s Settings) Validate() error {
	if s.Turns < 1 {
		return setupError("turn count must be positive, got %d", s.Turns)
	}
	if _, ok := mulliganNames[s.Mulligan]; !ok {
		return setupError("unknown mulligan type %d", int(s.Mulligan))
	}
	return nil
}

// turnDraws is the number of cards drawn for turn over a whole game.
func (s Settings) turnDraws() int {
	if s.DrawOnFirstTurn {
		return s.Turns
	}
	return s.Turns - 1
}

// Game is a single goldfish game: one player, five zones and no opponent.
type Game struct {
	Library     *zone.Zone
	Hand        *zone.Zone
	Command     *zone.Zone
	Battlefield *zone.Zone
	Graveyard   *zone.Zone

	stats  Stats
	rng    *rand.Rand
	turn   int
	logger *zap.Logger

	listeners   []rules.Listener
	events      *rules.EventBus
	registry    *rules.WatcherRegistry
	turnEvents  *watchers.TurnEventsWatcher
	firstPlayed *watchers.FirstPlayedWatcher
}

// New creates a game with empty zones.
func New(logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		Library:     zone.New("Library"),
		Hand:        zone.New("Hand"),
		Command:     zone.New("Command"),
		Battlefield: zone.New("Battlefield"),
		Graveyard:   zone.New("Graveyard"),
		logger:      logger,
	}
	g.setupWatchers()
	return g
}

// Build creates a template game from card names. Library names repeat once
// per copy.
func Build(catalog *card.Catalog, library, commanders []string, logger *zap.Logger) (*Game, error) {
	g := New(logger)
	for _, name := range commanders {
		def, ok := catalog.Get(name)
		if !ok {
			return nil, setupError("commander %q not in catalog", name)
		}
		if def.Cost == nil {
			return nil, setupError("commander %q has no mana cost", def.Name)
		}
		g.Command.Add(card.New(def))
	}
	for _, name := range library {
		def, ok := catalog.Get(name)
		if !ok {
			return nil, setupError("card %q not in catalog", name)
		}
		g.Library.Add(card.New(def))
	}
	return g, nil
}

// Clone returns an independent copy of the game. Card definitions are
// shared, event listeners are not.
func (g *Game) Clone() *Game {
	c := &Game{
		Library:     g.Library.Clone(),
		Hand:        g.Hand.Clone(),
		Command:     g.Command.Clone(),
		Battlefield: g.Battlefield.Clone(),
		Graveyard:   g.Graveyard.Clone(),
		logger:      g.logger,
	}
	c.setupWatchers()
	return c
}

// WithLogger replaces the logger used for game narration.
func (g *Game) WithLogger(logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g.logger = logger
	return g
}

// Stats returns the statistics gathered so far.
func (g *Game) Stats() Stats {
	return g.stats
}

func (g *Game) validate(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if g.Hand.Len() != 0 || g.Battlefield.Len() != 0 || g.Graveyard.Len() != 0 {
		return setupError("game already started")
	}
	if need := openingHandSize + settings.turnDraws(); g.Library.Len() < need {
		return setupError("library has %d cards, %d turns need at least %d", g.Library.Len(), settings.Turns, need)
	}
	if settings.Mulligan == MulliganThreeLands && len(g.Library.Query(card.TypeLand)) < 3 {
		return setupError("three-land mulligan needs at least three lands in the library")
	}
	return nil
}

// Play runs the whole game with the given random source and returns its
// statistics. A game can only be played once; play a Clone of a template.
func (g *Game) Play(settings Settings, rng *rand.Rand) (Stats, error) {
	if err := g.validate(settings); err != nil {
		return Stats{}, err
	}
	g.rng = rng
	g.stats = Stats{}
	g.turn = 0
	g.setupWatchers()

	g.Command.SortByManaValue()
	next := g.Command.AssignIDs(1)
	g.Library.AssignIDs(next)

	if err := g.drawOpeningHand(settings.Mulligan); err != nil {
		return Stats{}, err
	}

	tm := rules.NewTurnManager()
	var t *turnState
	for tm.TurnNumber() <= settings.Turns {
		var err error
		switch tm.CurrentStep() {
		case rules.StepUntap:
			t = newTurnState(g, tm.TurnNumber())
			t.untap()
		case rules.StepUpkeep:
			err = t.upkeep()
		case rules.StepDraw:
			if t.number > 1 || settings.DrawOnFirstTurn {
				t.draw(1)
			}
		case rules.StepMain:
			err = t.main()
		case rules.StepEnd:
			g.stats.Turns = append(g.stats.Turns, t.end())
		}
		if err != nil {
			g.stats.FirstPlayed = g.firstPlayed.Turns()
			return g.stats, fmt.Errorf("turn %d, %s step: %w", t.number, tm.CurrentStep(), err)
		}
		tm.AdvanceStep()
	}
	g.stats.FirstPlayed = g.firstPlayed.Turns()
	return g.stats, nil
}

// setupWatchers wires a fresh event bus to the watchers that feed the
// statistics.
func (g *Game) setupWatchers() {
	g.turnEvents = watchers.NewTurnEventsWatcher()
	g.firstPlayed = watchers.NewFirstPlayedWatcher()
	g.registry = rules.NewWatcherRegistry()
	g.registry.AddWatcher(g.turnEvents)
	g.registry.AddWatcher(g.firstPlayed)
	g.events = rules.NewEventBus()
	g.events.Subscribe(g.registry.NotifyWatchers)
	for _, l := range g.listeners {
		g.events.Subscribe(l)
	}
}

// Subscribe registers a listener for the events of the game. Listeners
// are kept when Play starts but not by Clone.
func (g *Game) Subscribe(listener rules.Listener) {
	if listener == nil {
		return
	}
	g.listeners = append(g.listeners, listener)
	g.events.Subscribe(listener)
}

func (g *Game) publish(eventType rules.EventType, c *card.Card) {
	e := rules.Event{Type: eventType, Turn: g.turn}
	if c != nil {
		e.CardID = c.ID
		e.CardName = c.Name()
	}
	g.events.Publish(e)
}

// drawCard moves the top card of the library to the hand. It reports false,
// marking the game as out of cards, when the library is empty.
func (g *Game) drawCard() bool {
	c, ok := g.Library.Draw()
	if !ok {
		if !g.stats.OutOfCards {
			g.logger.Debug("library is out of cards")
			g.publish(rules.EventLibraryEmpty, nil)
		}
		g.stats.OutOfCards = true
		return false
	}
	g.logger.Debug("draw card", zap.String("card", c.Name()))
	g.Hand.Add(c)
	g.publish(rules.EventDrewCard, c)
	return true
}
