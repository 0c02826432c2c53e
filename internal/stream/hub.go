package stream

import (
	"sync"
	"sync/atomic"

	"github.com/TSCosta20/housing-project/internal/models"
)

// Hub fans freshly triggered deal events out to live subscribers. Events
// are persisted before they reach the hub, so delivery here is best effort.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan models.DealEvent]struct{}

	dropped uint64
}

func NewHub() *Hub {
	return &Hub{subs: map[chan models.DealEvent]struct{}{}}
}

// Subscribe returns a channel that receives every published deal event.
func (h *Hub) Subscribe(buf int) chan models.DealEvent {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan models.DealEvent, buf)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it. Safe to call twice.
func (h *Hub) Unsubscribe(ch chan models.DealEvent) {
	if h == nil || ch == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *Hub) Publish(event models.DealEvent) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			// Drop when a subscriber is slow; publishing must not block the run.
			atomic.AddUint64(&h.dropped, 1)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Dropped() uint64 {
	if h == nil {
		return 0
	}
	return atomic.LoadUint64(&h.dropped)
}
