package sse

import (
	"sync"
)

// Event names published by the POS controller.
const (
	EventShiftOpened       = "shift.opened"
	EventShiftClosed       = "shift.closed"
	EventCartUpdated       = "cart.updated"
	EventCartReconciled    = "cart.reconciled"
	EventStockExceeded     = "stock.exceeded"
	EventCheckoutCompleted = "checkout.completed"
	EventCheckoutFailed    = "checkout.failed"
	EventCheckoutMismatch  = "checkout.mismatch"
	EventCatalogLoaded     = "catalog.loaded"
	EventCatalogError      = "catalog.error"
)

// Event is a notification for the UI of one terminal.
type Event struct {
	TerminalID string      `json:"terminal_id"`
	Name       string      `json:"event"`
	Data       interface{} `json:"data,omitempty"`
}

// Hub fans events out to the open event streams of each terminal.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  16,
	}
}

// Subscribe registers a stream for a terminal and returns its channel and a
// cleanup function that must be called when the stream ends.
func (h *Hub) Subscribe(terminalID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)
	if h.subscribers[terminalID] == nil {
		h.subscribers[terminalID] = make(map[chan Event]struct{})
	}
	h.subscribers[terminalID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[terminalID], ch)
			close(ch)
			if len(h.subscribers[terminalID]) == 0 {
				delete(h.subscribers, terminalID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers an event to every stream of the terminal. Slow streams
// drop the event rather than block the publisher.
func (h *Hub) Publish(terminalID, name string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := Event{TerminalID: terminalID, Name: name, Data: data}
	for ch := range h.subscribers[terminalID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of open streams for a terminal.
func (h *Hub) SubscriberCount(terminalID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[terminalID])
}
