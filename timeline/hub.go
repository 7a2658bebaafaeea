// Package timeline implements the shared live broadcast channel. Every
// connected client subscribes to the single process-wide hub; the
// orchestrator and the live-channel layer publish timeline events to it.
// Delivery is fire-and-forget: a slow or disconnected subscriber never blocks
// or breaks delivery to others, and there is no persistence or replay.
package timeline

import (
	"sync"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/logging"
)

// DefaultBufferSize is the per-subscriber event buffer. Events published
// while a subscriber's buffer is full are dropped for that subscriber.
const DefaultBufferSize = 64

// HubOptions configures a Hub instance.
//
// Use functional options with NewHub to override defaults.
type HubOptions struct {
	// BufferSize is the per-subscriber channel buffer.
	BufferSize int

	// Logger for drop diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Hub is the process-wide publish/subscribe registry backing the timeline.
// Subscriber-set mutation is mutually exclusive with publish iteration; both
// run under a single mutex so a subscriber can never be closed mid-send.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
	bufferSize  int
	logger      logging.Logger
}

// Subscriber is one live client's view of the timeline. Events arrive on
// Events() until Close (or Hub.Unsubscribe) is called, after which the
// channel is closed.
type Subscriber struct {
	hub     *Hub
	events  chan core.TimelineEvent
	closed  bool
	dropped int
}

// Events returns the channel delivering published timeline events.
func (s *Subscriber) Events() <-chan core.TimelineEvent { return s.events }

// Close unsubscribes from the hub. Safe to call multiple times.
func (s *Subscriber) Close() { s.hub.Unsubscribe(s) }

// NewHub constructs an empty hub.
func NewHub(optFns ...func(o *HubOptions)) *Hub {
	opts := HubOptions{
		BufferSize: DefaultBufferSize,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		bufferSize:  opts.BufferSize,
		logger:      opts.Logger,
	}
}

// Subscribe registers a new subscriber. Only events published after the call
// are delivered; there is no replay.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{hub: h, events: make(chan core.TimelineEvent, h.bufferSize)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its event channel. Idempotent,
// so abrupt-disconnect cleanup paths may race a deliberate Close safely.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	delete(h.subscribers, sub)
	close(sub.events)
}

// Publish delivers the event to every current subscriber without blocking.
// A subscriber whose buffer is full misses the event; the drop is counted
// and logged, and delivery to the remaining subscribers continues.
func (h *Hub) Publish(event core.TimelineEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			sub.dropped++
			h.logger.Debug("timeline event dropped for slow subscriber",
				"event_type", event.EventType(), "dropped_total", sub.dropped)
		}
	}
}

// Len returns the current number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
