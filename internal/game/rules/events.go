package rules

// EventType indicates the category of a game event.
type EventType string

const (
	// Card events
	EventDrewCard     EventType = "DREW_CARD"
	EventLibraryEmpty EventType = "LIBRARY_EMPTY"

	// Land events
	EventLandPlayed             EventType = "LAND_PLAYED"
	EventLandPutOntoBattlefield EventType = "LAND_PUT_ONTO_BATTLEFIELD"
	EventLandPutIntoHand        EventType = "LAND_PUT_INTO_HAND"
	EventLandReturned           EventType = "LAND_RETURNED"

	// Spell/Ability events
	EventSpellCast           EventType = "SPELL_CAST"
	EventCommanderCast       EventType = "COMMANDER_CAST"
	EventActivatedAbility    EventType = "ACTIVATED_ABILITY"
	EventSacrificedPermanent EventType = "SACRIFICED_PERMANENT"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type     EventType
	Turn     int    // Turn the event happened on, 0 before the first turn
	CardID   int    // In-game id of the card involved, 0 if none
	CardName string // Name of the card involved
	Amount   int    // Numeric value (cards drawn, mana spent, ...)
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. Listeners run in subscription order. A bus belongs to a single
// game and is not safe for concurrent use.
type EventBus struct {
	listeners      []handled
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

type handled struct {
	handle   int
	listener Listener
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners = append(bus.listeners, handled{handle: handle, listener: listener})
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	for i, l := range bus.listeners {
		if l.handle == handle {
			bus.listeners = append(bus.listeners[:i], bus.listeners[i+1:]...)
			return
		}
	}
	for eventType, listeners := range bus.typedListeners {
		for i, l := range listeners {
			if l.Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	for _, l := range bus.listeners {
		l.listener(event)
	}
	for _, l := range bus.typedListeners[event.Type] {
		l.Callback(event)
	}
}
