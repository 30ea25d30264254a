package realtime

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Subscriber is a live observer connection. Send must not block: it
// reports false when the event could not be queued.
type Subscriber interface {
	Send(evt Event) bool
}

// Hub maps channels to their current subscriber sets and delivers
// published events to every subscriber registered at the moment of the
// call. Delivery is best-effort: an event that cannot be queued for a
// slow observer is dropped for that observer only. Hub state lives for
// the process lifetime; there is no persistence and no replay for
// reconnecting observers.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Subscriber]struct{}
	joined   map[Subscriber]map[string]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[Subscriber]struct{}),
		joined:   make(map[Subscriber]map[string]struct{}),
	}
}

// Join adds the subscriber to a channel. Joining twice is a no-op.
func (h *Hub) Join(sub Subscriber, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[Subscriber]struct{})
	}
	h.channels[channel][sub] = struct{}{}
	if h.joined[sub] == nil {
		h.joined[sub] = make(map[string]struct{})
	}
	h.joined[sub][channel] = struct{}{}
}

// Leave removes the subscriber from one channel.
func (h *Hub) Leave(sub Subscriber, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.channels[channel], sub)
	delete(h.joined[sub], channel)
}

// Disconnect removes the subscriber from every channel it joined.
// Called when the underlying connection goes away.
func (h *Hub) Disconnect(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for channel := range h.joined[sub] {
		delete(h.channels[channel], sub)
	}
	delete(h.joined, sub)
}

// Publish delivers evt to a snapshot of the channel's subscribers. A
// subscriber joining mid-delivery may miss the event; one leaving may
// still receive it. Events a subscriber cannot accept are dropped.
func (h *Hub) Publish(channel string, evt Event) {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.channels[channel]))
	for sub := range h.channels[channel] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if !sub.Send(evt) {
			log.WithFields(log.Fields{
				"channel": channel,
				"event":   evt.Type,
			}).Warn("Dropping event for slow observer")
		}
	}
}

// Subscribers reports how many observers are currently on a channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
