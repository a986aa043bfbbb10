// Package watchers holds the watchers that turn game events into statistics.
package watchers

import (
	"github.com/magefree/decksim/internal/game/rules"
)

// TurnEventsWatcher counts the events of the current turn by type.
type TurnEventsWatcher struct {
	*rules.BaseWatcher
	counts map[rules.EventType]int
}

// NewTurnEventsWatcher creates a new turn events watcher.
func NewTurnEventsWatcher() *TurnEventsWatcher {
	return &TurnEventsWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeTurn, "TurnEventsWatcher"),
		counts:      make(map[rules.EventType]int),
	}
}

// Watch implements the Watcher interface.
func (w *TurnEventsWatcher) Watch(event rules.Event) {
	w.counts[event.Type]++
}

// Reset clears the watcher's state.
func (w *TurnEventsWatcher) Reset() {
	clear(w.counts)
}

// Count returns the number of events of a type seen this turn.
func (w *TurnEventsWatcher) Count(eventType rules.EventType) int {
	return w.counts[eventType]
}

// FirstPlayedWatcher records the turn each card name was first played,
// lands and spells alike.
type FirstPlayedWatcher struct {
	*rules.BaseWatcher
	firstPlayed map[string]int
}

// NewFirstPlayedWatcher creates a new first played watcher.
func NewFirstPlayedWatcher() *FirstPlayedWatcher {
	return &FirstPlayedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "FirstPlayedWatcher"),
		firstPlayed: make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *FirstPlayedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventLandPlayed && event.Type != rules.EventSpellCast {
		return
	}
	if event.CardName == "" {
		return
	}
	if _, seen := w.firstPlayed[event.CardName]; !seen {
		w.firstPlayed[event.CardName] = event.Turn
	}
}

// Reset clears the watcher's state.
func (w *FirstPlayedWatcher) Reset() {
	clear(w.firstPlayed)
}

// FirstPlayed returns the turn a card was first played, or 0 if it was not.
func (w *FirstPlayedWatcher) FirstPlayed(name string) int {
	return w.firstPlayed[name]
}

// Turns returns a copy of the first played turn by card name, nil when
// nothing was played.
func (w *FirstPlayedWatcher) Turns() map[string]int {
	if len(w.firstPlayed) == 0 {
		return nil
	}
	turns := make(map[string]int, len(w.firstPlayed))
	for name, turn := range w.firstPlayed {
		turns[name] = turn
	}
	return turns
}
