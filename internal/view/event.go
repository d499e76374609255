// Package view is the small retained tree the previewer mounts into: a
// container, a wrapper holding one page item per page, and a pixel canvas
// per item, plus listener bookkeeping for the events they receive.
package view

import "sync"

// EventType names an event.
type EventType string

const (
	PointerDown EventType = "pointerdown"
	PointerMove EventType = "pointermove"
	PointerUp   EventType = "pointerup"
	Resize      EventType = "resize"
)

// Event carries pointer coordinates in pixels, or the new size for Resize.
type Event struct {
	Type          EventType
	X, Y          float64
	Width, Height float64
}

// Handler receives dispatched events.
type Handler func(Event)

// ListenerID identifies one registration for removal.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn Handler
}

// EventTarget keeps listeners per event type. The zero value is ready to use.
type EventTarget struct {
	mu        sync.Mutex
	next      ListenerID
	listeners map[EventType][]listener
}

// On registers fn for t.
func (et *EventTarget) On(t EventType, fn Handler) ListenerID {
	et.mu.Lock()
	defer et.mu.Unlock()
	if et.listeners == nil {
		et.listeners = make(map[EventType][]listener)
	}
	et.next++
	et.listeners[t] = append(et.listeners[t], listener{id: et.next, fn: fn})
	return et.next
}

// Off removes a registration and reports whether it existed.
func (et *EventTarget) Off(id ListenerID) bool {
	if id == 0 {
		return false
	}
	et.mu.Lock()
	defer et.mu.Unlock()
	for t, ls := range et.listeners {
		for i, l := range ls {
			if l.id != id {
				continue
			}
			et.listeners[t] = append(ls[:i:i], ls[i+1:]...)
			if len(et.listeners[t]) == 0 {
				delete(et.listeners, t)
			}
			return true
		}
	}
	return false
}

// Dispatch calls every listener registered for ev.Type. The set is captured
// before the first call, so handlers may add or remove listeners.
func (et *EventTarget) Dispatch(ev Event) {
	et.mu.Lock()
	ls := append([]listener(nil), et.listeners[ev.Type]...)
	et.mu.Unlock()
	for _, l := range ls {
		l.fn(ev)
	}
}

// ListenerCount returns the number of listeners for t.
func (et *EventTarget) ListenerCount(t EventType) int {
	et.mu.Lock()
	defer et.mu.Unlock()
	return len(et.listeners[t])
}

// Window receives viewport-level events such as Resize.
type Window struct {
	EventTarget
}

// NewWindow returns an empty window.
func NewWindow() *Window {
	return &Window{}
}
