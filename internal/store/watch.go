package store

import (
	"sync"

	"github.com/lumenlabs/lumen-cli/internal/logging"
)

// The watch hub implements live subscriptions: a watcher receives an
// initial snapshot immediately, then a full replacement snapshot after
// every store write that touches its topic. There is no incremental merge
// on the client side.
//
// CancelFunc must be invoked exactly once per subscription; it is
// idempotent, closes the snapshot channel and stops all further pushes.

// CancelFunc cancels a live subscription.
type CancelFunc func()

type subscriber struct {
	topic  string
	notify chan struct{}
}

type hub struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	next   int
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[int]*subscriber)}
}

func (h *hub) register(topic string) (int, chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	// Buffered by one so broadcasts coalesce instead of blocking writers.
	n := make(chan struct{}, 1)
	h.subs[id] = &subscriber{topic: topic, notify: n}
	return id, n
}

func (h *hub) unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// broadcast wakes every subscriber of topic. Writers never block: a
// pending wake-up already covers the new change.
func (h *hub) broadcast(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, sub := range h.subs {
		if sub.topic != topic {
			continue
		}
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = make(map[int]*subscriber)
}

// watch starts a subscription on topic backed by query. Each push is the
// query's full result at that moment.
func watch[T any](h *hub, topic string, query func() (T, error)) (<-chan T, CancelFunc) {
	id, notify := h.register(topic)
	out := make(chan T, 1)
	done := make(chan struct{})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.unregister(id)
			close(done)
		})
	}

	go func() {
		defer close(out)
		for {
			snap, err := query()
			if err != nil {
				logging.L().Warnw("subscription query failed", "topic", topic, "error", err)
			} else {
				select {
				case out <- snap:
				case <-done:
					return
				}
			}

			select {
			case <-done:
				return
			case <-notify:
			}
		}
	}()

	return out, cancel
}
