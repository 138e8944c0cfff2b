package unlock

import "sync"

// Hub distributes foreground-regain events to per-session subscribers.
// The REST layer publishes into it; gates subscribe only while awaiting
// the user's return and must cancel on any exit from that state.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func()
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for a topic and returns its cancel func.
// Canceling twice is safe.
func (h *Hub) Subscribe(topic string, fn func()) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]func())
	}
	h.subs[topic][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[topic], id)
		if len(h.subs[topic]) == 0 {
			delete(h.subs, topic)
		}
	}
}

// Publish invokes every subscriber of the topic. Callbacks run outside
// the hub lock so they may cancel their own subscription.
func (h *Hub) Publish(topic string) {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs[topic]))
	for _, fn := range h.subs[topic] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
