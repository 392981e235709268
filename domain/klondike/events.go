package klondike

import (
	"sync"

	"github.com/luca-patrignani/klondike/domain/deck"
)

// EventKind identifies the events published by a Game.
type EventKind string

const (
	EventMove    EventKind = "move"
	EventDraw    EventKind = "draw"
	EventRestock EventKind = "restock"
	EventReveal  EventKind = "reveal"
	EventWon     EventKind = "won"
	EventTick    EventKind = "tick"
)

// Event is implemented by every event payload.
type Event interface {
	Kind() EventKind
}

// MoveEvent is published for every Move call, legal or not.
type MoveEvent struct {
	From    Location `json:"from"`
	Count   int      `json:"count"`
	To      Location `json:"to"`
	Success bool     `json:"success"`
}

// DrawEvent is published once per card moved from stock to waste.
type DrawEvent struct {
	Card deck.Card `json:"card"`
}

// RestockEvent is published for every Restock call. Pass is the pass
// counter after the call.
type RestockEvent struct {
	Success bool `json:"success"`
	Pass    int  `json:"pass"`
}

// RevealEvent is published when a face-down tableau card is turned up.
type RevealEvent struct {
	Tableau int       `json:"tableau"` // 1-based
	Card    deck.Card `json:"card"`
}

// WonEvent is published once, by the move that completes the foundations.
type WonEvent struct{}

// TickEvent is published by the game clock every active second.
type TickEvent struct{}

func (MoveEvent) Kind() EventKind    { return EventMove }
func (DrawEvent) Kind() EventKind    { return EventDraw }
func (RestockEvent) Kind() EventKind { return EventRestock }
func (RevealEvent) Kind() EventKind  { return EventReveal }
func (WonEvent) Kind() EventKind     { return EventWon }
func (TickEvent) Kind() EventKind    { return EventTick }

// Listener receives events synchronously, on the publisher's goroutine.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Bus dispatches events to its listeners in subscription order.
// Publish runs the listeners outside the lock, so a listener may publish,
// subscribe or unsubscribe re-entrantly.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.listeners {
		if s.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers e to a snapshot of the current listeners.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn(e)
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
