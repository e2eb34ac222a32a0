// Package realtime fans row-change events out to in-process subscribers.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

const defaultBufferSize = 64

// Hub delivers events published on a stream to every current subscriber of that stream.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu         sync.RWMutex
	subs       map[domain.Stream]map[*subscriber]struct{}
	bufferSize int
	logger     *slog.Logger
}

type subscriber struct {
	ch   chan domain.ChangeEvent
	once sync.Once
}

// NewHub creates a hub. A non-positive bufferSize selects the default.
func NewHub(bufferSize int, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:       make(map[domain.Stream]map[*subscriber]struct{}),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Subscribe registers for events on stream. The returned cancel func unregisters and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(stream domain.Stream) (<-chan domain.ChangeEvent, func()) {
	sub := &subscriber{ch: make(chan domain.ChangeEvent, h.bufferSize)}

	h.mu.Lock()
	if h.subs[stream] == nil {
		h.subs[stream] = make(map[*subscriber]struct{})
	}
	h.subs[stream][sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		sub.once.Do(func() {
			h.mu.Lock()
			delete(h.subs[stream], sub)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish sends event to the subscribers of stream.
func (h *Hub) Publish(stream domain.Stream, event domain.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[stream] {
		select {
		case sub.ch <- event:
		default:
			h.logger.Warn("Dropping change event for slow subscriber",
				slog.String("stream", string(stream)),
				slog.String("table", event.Table))
		}
	}
}

// SubscriberCount reports how many subscribers stream has.
func (h *Hub) SubscriberCount(stream domain.Stream) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[stream])
}
