package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/goliatone/go-router/eventstream"
)

// StreamMessage is the envelope pushed to WebSocket and SSE subscribers.
type StreamMessage struct {
	Kind         string        `json:"kind"`
	Event        *PanelEvent   `json:"event,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

const (
	streamKindPanel        = "panel"
	streamKindNotification = "notification"
)

// RefreshHooks fans a panel event out to several hooks. Every hook runs; the
// errors are joined.
type RefreshHooks []RefreshHook

// PanelUpdated satisfies RefreshHook.
func (hs RefreshHooks) PanelUpdated(ctx context.Context, event PanelEvent) error {
	var errs []error
	for _, h := range hs {
		if h == nil {
			continue
		}
		if err := h.PanelUpdated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BroadcastHook fans out panel events and toasts to in-process subscribers
// and to a replayable event stream for SSE clients. It satisfies both
// RefreshHook and Notifier. Slow subscribers drop messages rather than block
// a transition.
type BroadcastHook struct {
	mu     sync.RWMutex
	subs   map[int]chan StreamMessage
	next   int
	events eventstream.Stream
}

// NewBroadcastHook creates a broadcast hook backed by an in-memory stream.
func NewBroadcastHook() *BroadcastHook {
	return NewBroadcastHookWithStream(nil)
}

// NewBroadcastHookWithStream publishes into stream, or a fresh in-memory
// stream when nil.
func NewBroadcastHookWithStream(stream eventstream.Stream) *BroadcastHook {
	if stream == nil {
		stream = eventstream.New()
	}
	return &BroadcastHook{
		subs:   make(map[int]chan StreamMessage),
		events: stream,
	}
}

// EventScope is the stream scope every dashboard message is published under.
func EventScope() eventstream.Scope {
	return eventstream.Scope{"topic": "dashboard"}
}

// Events exposes the stream SSE transports subscribe to.
func (h *BroadcastHook) Events() eventstream.Stream {
	return h.events
}

// PanelUpdated satisfies RefreshHook.
func (h *BroadcastHook) PanelUpdated(_ context.Context, event PanelEvent) error {
	h.publish(StreamMessage{Kind: streamKindPanel, Event: &event})
	return nil
}

// Notify satisfies Notifier.
func (h *BroadcastHook) Notify(_ context.Context, n Notification) error {
	h.publish(StreamMessage{Kind: streamKindNotification, Notification: &n})
	return nil
}

func (h *BroadcastHook) publish(msg StreamMessage) {
	h.mu.RLock()
	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	h.mu.RUnlock()

	if h.events == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.events.Publish(EventScope(), eventstream.Event{Name: msg.Kind, Payload: payload})
}

// Subscribe returns a channel of stream messages and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan StreamMessage, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan StreamMessage, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of active subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
