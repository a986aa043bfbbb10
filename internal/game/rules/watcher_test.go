package rules

import "testing"

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	gameWatcher := newCountingWatcher(WatcherScopeGame, "GameWatcher")
	turnWatcher := newCountingWatcher(WatcherScopeTurn, "TurnWatcher")
	registry.AddWatcher(gameWatcher)
	registry.AddWatcher(turnWatcher)
	registry.AddWatcher(nil)

	if registry.GetWatcher("GameWatcher") == nil {
		t.Fatal("should retrieve GameWatcher")
	}
	if got := registry.GetWatchersByScope(WatcherScopeTurn); len(got) != 1 {
		t.Fatalf("expected 1 turn watcher, got %d", len(got))
	}

	registry.NotifyWatchers(Event{Type: EventSpellCast})
	registry.NotifyWatchers(Event{Type: EventDrewCard})
	if gameWatcher.count != 1 || turnWatcher.count != 1 {
		t.Fatalf("expected both watchers to see one spell, got %d and %d", gameWatcher.count, turnWatcher.count)
	}

	registry.ResetWatchersByScope(WatcherScopeTurn)
	if turnWatcher.count != 0 {
		t.Fatalf("turn watcher should be reset, got %d", turnWatcher.count)
	}
	if gameWatcher.count != 1 {
		t.Fatalf("game watcher should keep its count, got %d", gameWatcher.count)
	}

	registry.ResetWatchers()
	if gameWatcher.count != 0 {
		t.Fatalf("game watcher should be reset, got %d", gameWatcher.count)
	}

	registry.RemoveWatcher("TurnWatcher")
	if registry.GetWatcher("TurnWatcher") != nil {
		t.Fatal("watcher should be removed")
	}
	registry.NotifyWatchers(Event{Type: EventSpellCast})
	if turnWatcher.count != 0 {
		t.Fatalf("removed watcher should not be notified, got %d", turnWatcher.count)
	}
}

func TestWatcherRegistryReplacesSameKey(t *testing.T) {
	registry := NewWatcherRegistry()
	first := newCountingWatcher(WatcherScopeGame, "Spells")
	second := newCountingWatcher(WatcherScopeGame, "Spells")
	registry.AddWatcher(first)
	registry.AddWatcher(second)

	registry.NotifyWatchers(Event{Type: EventSpellCast})
	if first.count != 0 || second.count != 1 {
		t.Fatalf("expected only the replacement to be notified, got %d and %d", first.count, second.count)
	}
	if got := registry.GetWatchersByScope(WatcherScopeGame); len(got) != 1 {
		t.Fatalf("expected 1 watcher, got %d", len(got))
	}
}

func TestWatcherScopeNames(t *testing.T) {
	if WatcherScopeTurn.String() != "TURN" {
		t.Errorf("expected TURN, got %s", WatcherScopeTurn)
	}
	if WatcherScope(9).String() != "UNKNOWN" {
		t.Errorf("expected UNKNOWN, got %s", WatcherScope(9))
	}
}

// countingWatcher counts spell casts.
type countingWatcher struct {
	*BaseWatcher
	count int
}

func newCountingWatcher(scope WatcherScope, key string) *countingWatcher {
	return &countingWatcher{BaseWatcher: NewBaseWatcher(scope, key)}
}

func (w *countingWatcher) Watch(event Event) {
	if event.Type == EventSpellCast {
		w.count++
	}
}

func (w *countingWatcher) Reset() {
	w.count = 0
}
