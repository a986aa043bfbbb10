package rules

// WatcherScope defines how long a watcher keeps what it tracked.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeTurn tracks events for the current turn and is reset when
	// the next one begins.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher is an interface for objects that watch game events and keep
// statistics about them.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)

	// Reset clears the watcher's state.
	Reset()

	// GetScope returns the scope of this watcher.
	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	GetKey() string
}

// BaseWatcher provides the scope and key half of a watcher.
type BaseWatcher struct {
	scope WatcherScope
	key   string
}

// NewBaseWatcher creates a new base watcher with the specified scope and key.
func NewBaseWatcher(scope WatcherScope, key string) *BaseWatcher {
	return &BaseWatcher{scope: scope, key: key}
}

// GetScope returns the watcher's scope.
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// WatcherRegistry manages the watchers of a game. Watchers are notified in
// the order they were added.
type WatcherRegistry struct {
	watchers []Watcher
	byKey    map[string]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		byKey: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher to the registry, replacing any watcher with the
// same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	key := watcher.GetKey()
	if _, ok := wr.byKey[key]; ok {
		wr.RemoveWatcher(key)
	}
	wr.byKey[key] = watcher
	wr.watchers = append(wr.watchers, watcher)
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	if _, ok := wr.byKey[key]; !ok {
		return
	}
	delete(wr.byKey, key)
	for i, w := range wr.watchers {
		if w.GetKey() == key {
			wr.watchers = append(wr.watchers[:i], wr.watchers[i+1:]...)
			return
		}
	}
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	return wr.byKey[key]
}

// GetWatchersByScope returns all watchers for a given scope.
func (wr *WatcherRegistry) GetWatchersByScope(scope WatcherScope) []Watcher {
	var result []Watcher
	for _, w := range wr.watchers {
		if w.GetScope() == scope {
			result = append(result, w)
		}
	}
	return result
}

// ResetWatchers resets all watchers.
func (wr *WatcherRegistry) ResetWatchers() {
	for _, w := range wr.watchers {
		w.Reset()
	}
}

// ResetWatchersByScope resets all watchers for a given scope.
func (wr *WatcherRegistry) ResetWatchersByScope(scope WatcherScope) {
	for _, w := range wr.watchers {
		if w.GetScope() == scope {
			w.Reset()
		}
	}
}

// NotifyWatchers notifies all watchers of an event. Watchers filter the
// events themselves.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	for _, w := range wr.watchers {
		w.Watch(event)
	}
}
