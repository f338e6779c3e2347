package backend

import "sync"

// subscriptionBuffer is how many unread events a subscriber may hold before
// the oldest is dropped.
const subscriptionBuffer = 4

// Subscription receives auth events until Close is called.
type Subscription struct {
	id   uint64
	ch   chan AuthEvent
	hub  *hub
	once sync.Once
}

// Events returns the channel events arrive on. It is closed by Close.
func (s *Subscription) Events() <-chan AuthEvent {
	return s.ch
}

// Close unregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s.id)
	})
}

// hub fans auth events out to subscribers without ever blocking the publisher.
type hub struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]*Subscription
}

func newHub() *hub {
	return &hub{subs: make(map[uint64]*Subscription)}
}

func (h *hub) subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	sub := &Subscription{
		id:  h.next,
		ch:  make(chan AuthEvent, subscriptionBuffer),
		hub: h,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.ch)
	}
}

// publish delivers ev to every subscriber. A full buffer loses its oldest
// event so the newest session state always gets through.
func (h *hub) publish(ev AuthEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		select {
		case sub.ch <- ev:
			continue
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
