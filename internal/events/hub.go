// Package events is the in-process change feed. Services publish job
// mutations here and the websocket handler fans them out so the UI can
// refresh without polling. There is no external broker; the whole app is a
// single process.
package events

import (
	"sync"
	"time"
)

const (
	TypeJobCreated   = "job.created"
	TypeJobUpdated   = "job.updated"
	TypeJobDeleted   = "job.deleted"
	TypeJobsImported = "jobs.imported"
)

type Event struct {
	Type  string    `json:"type"`
	JobID string    `json:"job_id,omitempty"`
	Count int       `json:"count,omitempty"` // jobs.imported only
	At    time.Time `json:"at"`
}

type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a buffered channel for events. The caller must drain
// it and call Unsubscribe when done.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish delivers the event to every subscriber. A subscriber with a full
// buffer misses the event rather than blocking the publisher.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
